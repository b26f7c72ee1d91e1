package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsTuningAndScriptChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.yaml"), []byte("win_score: 3\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "difficulty.tengo"), []byte("x := 1"), 0o644))

	seen := map[string]ChangeKind{}
	deadline := time.Now().Add(3 * time.Second)
	for len(seen) < 2 && time.Now().Before(deadline) {
		for _, c := range w.Poll() {
			seen[c.Base()] = c.Kind
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, map[string]ChangeKind{
		"game.yaml":        ChangeTuning,
		"difficulty.tengo": ChangeScript,
	}, seen)
	assert.NoError(t, w.Err())
}

func TestWatcherPollAndClose(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, w.Poll())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "close is idempotent")

	var nilWatcher *Watcher
	assert.Nil(t, nilWatcher.Poll())
	assert.NoError(t, nilWatcher.Err())
	assert.NoError(t, nilWatcher.Close())
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	cases := map[string]ChangeKind{
		"game.yaml":                   ChangeTuning,
		"/tmp/prefabs/player.YML":     ChangeTuning,
		"scripts/difficulty.tengo":    ChangeScript,
		"notes.txt":                   0,
		"difficulty.tengo~":           0,
		"/tmp/prefabs/.game.yaml.swp": 0,
	}
	for name, want := range cases {
		assert.Equal(t, want, classify(name), name)
	}
}

func TestRelPath(t *testing.T) {
	cases := []struct {
		name string
		sub  string
		want string
	}{
		{name: "player.yaml", want: "player.yaml"},
		{name: "prefabs/player.yaml", want: "player.yaml"},
		{name: "./prefabs/game.yaml", want: "game.yaml"},
		{name: "difficulty.tengo", sub: scriptsDir, want: "scripts/difficulty.tengo"},
		{name: "scripts/difficulty.tengo", sub: scriptsDir, want: "scripts/difficulty.tengo"},
		{name: "prefabs/scripts/difficulty.tengo", sub: scriptsDir, want: "scripts/difficulty.tengo"},
		{name: "", want: ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, relPath(tc.name, tc.sub), tc.name)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	defer func() { Dir = prev }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.yaml"), []byte("win_score: 3\n"), 0o644))
	spec, err := LoadGameSpec("game.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3, spec.WinScore)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, scriptsDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, scriptsDir, "difficulty.tengo"), []byte("speed := func(b, s, f) { return b }"), 0o644))
	src, err := LoadScript("difficulty.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(src), "speed := func(b, s, f)")

	embeddedPlayer, err := Load("player.yaml")
	require.NoError(t, err, "files missing on disk fall back to the embedded copy")
	assert.NotEmpty(t, embeddedPlayer)

	_, err = Load("missing.yaml")
	assert.Error(t, err)
}
