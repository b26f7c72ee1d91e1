package component

type RoundPhase string

const (
	PhaseReady    RoundPhase = "ready"
	PhaseRunning  RoundPhase = "running"
	PhaseGameOver RoundPhase = "game_over"
	PhaseWon      RoundPhase = "won"
)

// Round is the state of one run. It lives on a single entity.
type Round struct {
	ID       string
	Phase    RoundPhase
	Score    int
	WinScore int
	Frames   int
	// PlayerRemoved is set once the player left the scene after the round
	// ended.
	PlayerRemoved bool
	// RestartRequested asks the owner of the world to rebuild it after the
	// current frame.
	RestartRequested bool
}

var RoundComponent = NewComponent[Round]()

// Over reports whether the round ended, by losing or winning.
func (r *Round) Over() bool {
	return r.Phase == PhaseGameOver || r.Phase == PhaseWon
}

// Scroll carries the obstacle stream tuning. Speeds are world units per
// frame.
type Scroll struct {
	PowerupSpeed float64
	EnemySpeed   float64
	// Multiplier is written by the difficulty script.
	Multiplier float64
	SpawnZ     float64
	CameraZ    float64
}

var ScrollComponent = NewComponent[Scroll]()

// SpeedFor returns the effective per-frame speed of a category.
func (s *Scroll) SpeedFor(c ObstacleCategory) float64 {
	m := s.Multiplier
	if m <= 0 {
		m = 1
	}
	if c == CategoryEnemy {
		return s.EnemySpeed * m
	}
	return s.PowerupSpeed * m
}
