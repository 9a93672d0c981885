package emulator

import (
	"context"
	"time"
)

// CHIP-8 timers and display run at 60Hz
const REFRESH_RATE = 60

// Frontend pumps host input between cycle batches.
// ProcessInput returns true when the user asked to quit.
type Frontend interface {
	ProcessInput() bool
}

/*
Run is our main loop. On every tick of a 60Hz ticker the frontend handles input and one cycle batch runs,
which also counts the timers down and presents the display.

It returns nil when the frontend asks to quit, the context error when ctx is cancelled,
and the fatal error when the program crashes.
*/
func (c *Chip8) Run(ctx context.Context, frontend Frontend) error {
	ticker := time.NewTicker(time.Second / time.Duration(c.refreshRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.tone.Stop()
			return ctx.Err()

		case <-ticker.C:
			if frontend.ProcessInput() {
				c.tone.Stop()
				return nil
			}
			if err := c.Cycle(); err != nil {
				return err
			}
		}
	}
}
