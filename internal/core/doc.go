// Package core provides the platform-neutral types shared by the game and
// the terminal layer: runtime configuration, input frames, colors and a
// cell-based screen buffer. It has no external dependencies (no Bubble Tea)
// so game logic stays pure and testable.
package core
