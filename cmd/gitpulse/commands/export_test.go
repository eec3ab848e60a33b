package commands

import (
	"time"

	"github.com/spf13/cobra"
)

// NewShowCommandWithClock exposes the clock seam to external tests.
func NewShowCommandWithClock(now func() time.Time) *cobra.Command {
	return newShowCommandWithClock(now)
}
