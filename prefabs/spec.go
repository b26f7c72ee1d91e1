package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// GameSpec is the round tuning read from game.yaml.
type GameSpec struct {
	Name             string            `yaml:"name"`
	WinScore         int               `yaml:"win_score"`
	Scroll           ScrollSpec        `yaml:"scroll"`
	Obstacles        []ObstacleSetSpec `yaml:"obstacles"`
	Player           string            `yaml:"player"`
	Ground           string            `yaml:"ground"`
	Camera           string            `yaml:"camera"`
	Starfield        string            `yaml:"starfield"`
	DifficultyScript string            `yaml:"difficulty_script"`
}

type ScrollSpec struct {
	PowerupSpeed float64 `yaml:"powerup_speed"`
	EnemySpeed   float64 `yaml:"enemy_speed"`
	SpawnZ       float64 `yaml:"spawn_z"`
	CameraZ      float64 `yaml:"camera_z"`
}

// ObstacleSetSpec is one obstacle collection: Count copies of Prefab.
type ObstacleSetSpec struct {
	Prefab string `yaml:"prefab"`
	Count  int    `yaml:"count"`
}

// DefaultGameSpec returns the tuning used when game.yaml omits a field.
func DefaultGameSpec() GameSpec {
	return GameSpec{
		Name:     "lanerunner",
		WinScore: 20,
		Scroll: ScrollSpec{
			PowerupSpeed: 0.03,
			EnemySpeed:   0.03,
			SpawnZ:       -10,
			CameraZ:      5.5,
		},
		Obstacles: []ObstacleSetSpec{
			{Prefab: "powerup.yaml", Count: 3},
			{Prefab: "enemy.yaml", Count: 2},
		},
		Player:           "player.yaml",
		Ground:           "ground.yaml",
		Camera:           "camera.yaml",
		Starfield:        "starfield.yaml",
		DifficultyScript: "difficulty.tengo",
	}
}

var ErrInvalidGameSpec = errors.New("prefabs: invalid game spec")

// Validate reports every rule the spec breaks.
func (s GameSpec) Validate() error {
	var errs []error
	if s.WinScore <= 0 {
		errs = append(errs, fmt.Errorf("win_score must be positive, got %d", s.WinScore))
	}
	if s.Scroll.PowerupSpeed <= 0 || s.Scroll.EnemySpeed <= 0 {
		errs = append(errs, fmt.Errorf("scroll speeds must be positive"))
	}
	if s.Scroll.SpawnZ >= s.Scroll.CameraZ {
		errs = append(errs, fmt.Errorf("spawn_z %v must be behind camera_z %v", s.Scroll.SpawnZ, s.Scroll.CameraZ))
	}
	for i, o := range s.Obstacles {
		if strings.TrimSpace(o.Prefab) == "" {
			errs = append(errs, fmt.Errorf("obstacles[%d]: prefab is required", i))
		}
		if o.Count < 0 {
			errs = append(errs, fmt.Errorf("obstacles[%d]: count must not be negative", i))
		}
	}
	for name, v := range map[string]string{"player": s.Player, "ground": s.Ground, "camera": s.Camera} {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Errorf("%s prefab is required", name))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidGameSpec, errors.Join(errs...))
}

// DecodeGameSpec decodes game.yaml over the defaults and validates it.
func DecodeGameSpec(data []byte) (GameSpec, error) {
	spec := DefaultGameSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return GameSpec{}, fmt.Errorf("prefabs: unmarshal game spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return GameSpec{}, err
	}
	return spec, nil
}

func LoadGameSpec(filename string) (GameSpec, error) {
	if filename == "" {
		filename = "game.yaml"
	}
	data, err := Load(filename)
	if err != nil {
		return GameSpec{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeGameSpec(data)
}

type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
