package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// Dir is the on-disk directory whose files override the embedded ones.
var Dir = "prefabs"

const scriptsDir = "scripts"

// Load returns a tuning or prefab file, preferring the copy under Dir.
func Load(name string) ([]byte, error) {
	return read(relPath(name, ""))
}

// LoadScript returns a difficulty script from the scripts directory,
// preferring the copy under Dir.
func LoadScript(name string) ([]byte, error) {
	return read(relPath(name, scriptsDir))
}

func read(rel string) ([]byte, error) {
	if rel == "" {
		return nil, fmt.Errorf("prefabs: empty file name")
	}
	data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel)))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("prefabs: read %s: %w", rel, err)
	}
	data, err = embedded.ReadFile(rel)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", rel, err)
	}
	return data, nil
}

// relPath maps the names used in game.yaml and on the command line
// ("player.yaml", "prefabs/player.yaml", "scripts/difficulty.tengo") onto a
// path relative to Dir.
func relPath(name, sub string) string {
	if name == "" {
		return ""
	}
	s := path.Clean(filepath.ToSlash(name))
	s = strings.TrimPrefix(s, "prefabs/")
	if sub == "" {
		return s
	}
	return path.Join(sub, strings.TrimPrefix(s, sub+"/"))
}
