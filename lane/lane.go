// Package lane maps the three travel tracks of the corridor to world X
// coordinates.
package lane

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Lane is one of the three travel tracks: 0 = left, 1 = middle, 2 = right.
type Lane int

const (
	Left Lane = iota
	Middle
	Right
)

// Count is the number of lanes.
const Count = 3

var positions = [Count]float64{-1, 0, 1}

// Valid reports whether l is one of the three lanes.
func (l Lane) Valid() bool {
	return l >= Left && l <= Right
}

func (l Lane) String() string {
	switch l {
	case Left:
		return "left"
	case Middle:
		return "middle"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("lane(%d)", int(l))
	}
}

// ToX returns the world X of a lane. It panics on an invalid lane: callers
// own the range check.
func ToX(l Lane) float64 {
	if !l.Valid() {
		panic(fmt.Sprintf("lane: invalid lane %d", int(l)))
	}
	return positions[l]
}

// Random draws a lane uniformly.
func Random(r *rand.Rand) Lane {
	return Lane(r.IntN(Count))
}

// RandomX draws a lane uniformly and returns its world X.
func RandomX(r *rand.Rand) float64 {
	return ToX(Random(r))
}

// Clamp pins l to the valid range.
func Clamp(l Lane) Lane {
	if l < Left {
		return Left
	}
	if l > Right {
		return Right
	}
	return l
}

// Nearest returns the lane whose X is closest to x.
func Nearest(x float64) Lane {
	best := Left
	bestDist := math.Inf(1)
	for i, px := range positions {
		if d := math.Abs(px - x); d < bestDist {
			best = Lane(i)
			bestDist = d
		}
	}
	return best
}

// Width is the distance between two adjacent lanes.
func Width() float64 {
	return positions[1] - positions[0]
}

// IsLaneX reports whether x is exactly one of the lane positions.
func IsLaneX(x float64) bool {
	for _, px := range positions {
		if px == x {
			return true
		}
	}
	return false
}
