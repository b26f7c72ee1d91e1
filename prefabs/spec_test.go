package prefabs

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedGameSpecMatchesDefaults(t *testing.T) {
	spec, err := LoadGameSpec("game.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultGameSpec(), spec)
}

func TestDecodeGameSpec(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		check   func(t *testing.T, s GameSpec)
		wantErr bool
	}{
		{
			name: "empty_uses_defaults",
			src:  "",
			check: func(t *testing.T, s GameSpec) {
				assert.Equal(t, 20, s.WinScore)
				assert.Equal(t, 0.03, s.Scroll.PowerupSpeed)
				assert.Len(t, s.Obstacles, 2)
			},
		},
		{
			name: "partial_override_keeps_other_defaults",
			src:  "win_score: 5\nscroll:\n  enemy_speed: 0.05\n",
			check: func(t *testing.T, s GameSpec) {
				assert.Equal(t, 5, s.WinScore)
				assert.Equal(t, 0.05, s.Scroll.EnemySpeed)
				assert.Equal(t, 0.03, s.Scroll.PowerupSpeed)
				assert.Equal(t, -10.0, s.Scroll.SpawnZ)
			},
		},
		{
			name: "obstacle_list_replaced",
			src:  "obstacles:\n  - prefab: enemy.yaml\n    count: 4\n",
			check: func(t *testing.T, s GameSpec) {
				require.Len(t, s.Obstacles, 1)
				assert.Equal(t, 4, s.Obstacles[0].Count)
			},
		},
		{name: "zero_win_score", src: "win_score: 0\n", wantErr: true},
		{name: "negative_speed", src: "scroll:\n  powerup_speed: -1\n", wantErr: true},
		{name: "spawn_in_front_of_camera", src: "scroll:\n  spawn_z: 6\n", wantErr: true},
		{name: "negative_count", src: "obstacles:\n  - prefab: enemy.yaml\n    count: -1\n", wantErr: true},
		{name: "missing_prefab", src: "obstacles:\n  - count: 1\n", wantErr: true},
		{name: "bad_yaml", src: "win_score: [\n", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := DecodeGameSpec([]byte(tc.src))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, s)
		})
	}
}

func TestValidationErrorsAreWrapped(t *testing.T) {
	s := DefaultGameSpec()
	s.WinScore = 0
	s.Player = ""
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidGameSpec))
	assert.Contains(t, err.Error(), "win_score")
	assert.Contains(t, err.Error(), "player prefab")
}

func TestEmbeddedEntityPrefabsDecode(t *testing.T) {
	for _, name := range []string{"player.yaml", "powerup.yaml", "enemy.yaml", "ground.yaml", "camera.yaml", "starfield.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			require.NoError(t, err)
			assert.NotEmpty(t, spec.Name)
			assert.NotEmpty(t, spec.Components)
		})
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("player.yaml")
	require.NoError(t, err)

	p, err := DecodeComponentSpec[PlayerComponentSpec](spec.Components["player"])
	require.NoError(t, err)
	assert.Equal(t, 60.0, p.LaneImpulse)
	assert.Equal(t, "snap", p.AirShift)
	assert.Equal(t, 1, p.StartLane)

	m, err := DecodeComponentSpec[MeshComponentSpec](spec.Components["mesh"])
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0, G: 0xff, B: 0xff, A: 0xff}, m.Color.NRGBA)

	empty, err := DecodeComponentSpec[PlayerComponentSpec](nil)
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: `"#b8860b"`, want: color.NRGBA{R: 0xb8, G: 0x86, B: 0x0b, A: 0xff}},
		{in: `"ff000080"`, want: color.NRGBA{R: 0xff, A: 0x80}},
		{in: `"#fff"`, wantErr: true},
		{in: `"#zzzzzz"`, wantErr: true},
		{in: `[1, 2]`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tc.in), &c)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.NRGBA)
		})
	}
}

func TestLoadScriptPaths(t *testing.T) {
	for _, name := range []string{"difficulty.tengo", "scripts/difficulty.tengo", "prefabs/scripts/difficulty.tengo"} {
		t.Run(name, func(t *testing.T) {
			data, err := LoadScript(name)
			require.NoError(t, err)
			assert.Contains(t, string(data), "speed := func")
		})
	}
	_, err := LoadScript("missing.tengo")
	assert.Error(t, err)
}
