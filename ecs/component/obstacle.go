package component

type ObstacleCategory string

const (
	CategoryPowerup ObstacleCategory = "powerup"
	CategoryEnemy   ObstacleCategory = "enemy"
)

// Obstacle marks a recycled scrolling body. Spin is a cosmetic yaw rate in
// radians per frame; spinning obstacles keep their own visual orientation.
type Obstacle struct {
	Category ObstacleCategory
	Spin     float64
}

var ObstacleComponent = NewComponent[Obstacle]()
