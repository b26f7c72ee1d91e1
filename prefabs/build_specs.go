package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw"`
	Scale float64 `yaml:"scale"`
}

type MeshComponentSpec struct {
	Shape  string    `yaml:"shape"`
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	Depth  float64   `yaml:"depth"`
	Radius float64   `yaml:"radius"`
	Color  YAMLColor `yaml:"color"`
}

type PhysicsBodyComponentSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Depth    float64 `yaml:"depth"`
	Radius   float64 `yaml:"radius"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
	Static   bool    `yaml:"static"`
	Gravity  bool    `yaml:"gravity"`
}

type PlayerComponentSpec struct {
	LaneImpulse    float64 `yaml:"lane_impulse"`
	JumpImpulse    float64 `yaml:"jump_impulse"`
	FallImpulse    float64 `yaml:"fall_impulse"`
	GroundBandLow  float64 `yaml:"ground_band_low"`
	GroundBandHigh float64 `yaml:"ground_band_high"`
	AirShift       string  `yaml:"air_shift"`
	StartLane      int     `yaml:"start_lane"`
}

type ObstacleComponentSpec struct {
	Category string  `yaml:"category"`
	Spin     float64 `yaml:"spin"`
}

type CameraComponentSpec struct {
	FOV        float64   `yaml:"fov"`
	Near       float64   `yaml:"near"`
	Far        float64   `yaml:"far"`
	FollowX    bool      `yaml:"follow_x"`
	FogColor   YAMLColor `yaml:"fog_color"`
	FogDensity float64   `yaml:"fog_density"`
	Background YAMLColor `yaml:"background"`
}

type StarfieldComponentSpec struct {
	Count  int       `yaml:"count"`
	Size   float64   `yaml:"size"`
	Spread float64   `yaml:"spread"`
	SpinX  float64   `yaml:"spin_x"`
	SpinY  float64   `yaml:"spin_y"`
	SpinZ  float64   `yaml:"spin_z"`
	Color  YAMLColor `yaml:"color"`
}
