// Package play runs the interactive game lifecycle for a single player.
//
// An Orchestrator moves through four phases: awaiting a grid size, playing,
// terminal (game over, waiting for the play-again answer) and ended. Commands
// that the current phase does not accept fail with ErrWrongPhase. After every
// accepted move and after a reset the Renderer receives a copy of the board.
//
// Two front ends sit on top of it: RunConsole reads lines from an io.Reader,
// and RunTUI draws coloured tiles on a tcell screen.
package play
