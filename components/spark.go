// Package components defines ECS components for the engine's effect entities.
package components

// Position represents a spark's screen position.
type Position struct {
	X, Y float32
}

// Velocity represents a spark's velocity in px/s.
type Velocity struct {
	X, Y float32
}

// Life tracks a spark's remaining and total lifetime in seconds.
type Life struct {
	Remaining float32
	Total     float32
}
