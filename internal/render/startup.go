package render

import "time"

// Startup animation timing.
const (
	StartupSteps     = 30
	StartupStepDelay = 100 * time.Millisecond
)

// StartupScript returns the scripted power-up burst for a strip of length n:
// a standing yellow center pixel plus three staggered pairs that fly out
// from the middle. Play it by placing the sprites in a pool and stepping
// Advance from 0 to StartupSteps-1.
func StartupScript(n int) []Sprite {
	mid := n / 2
	return []Sprite{
		{Active: true, ActivateAt: 0, Pos: mid, Vel: 0, Color: Color{255, 255, 0}},
		{ActivateAt: 5, Pos: mid - 1, Vel: -1, Color: Color{32, 32, 128}},
		{ActivateAt: 5, Pos: mid + 1, Vel: 1, Color: Color{32, 32, 128}},
		{ActivateAt: 10, Pos: mid - 1, Vel: -1, Color: Color{128, 0, 0}},
		{ActivateAt: 10, Pos: mid + 1, Vel: 1, Color: Color{128, 0, 0}},
		{ActivateAt: 15, Pos: mid - 1, Vel: -1, Color: Color{0, 128, 0}},
		{ActivateAt: 15, Pos: mid + 1, Vel: 1, Color: Color{0, 128, 0}},
	}
}
