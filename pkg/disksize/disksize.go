// Package disksize measures the bytes a working tree occupies on disk.
package disksize

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/gitpulse/pkg/pathfilter"
)

// DefaultSkip lists the entries left out of the measurement.
var DefaultSkip = []string{".git", "target", "node_modules"}

// Measure sums the sizes of regular files under root. Entries matching a
// skip pattern are not entered; nil skip means DefaultSkip.
func Measure(ctx context.Context, root string, skip []string) (uint64, error) {
	if skip == nil {
		skip = DefaultSkip
	}

	filter, err := pathfilter.New(root, pathfilter.Options{Exclude: skip})
	if err != nil {
		return 0, fmt.Errorf("measure size: %w", err)
	}

	var total uint64

	walkErr := pathfilter.Walk(ctx, root, filter, func(entry pathfilter.Entry) error {
		if size := entry.Info.Size(); size > 0 {
			total += uint64(size)
		}

		return nil
	})
	if walkErr != nil {
		return total, fmt.Errorf("measure size: %w", walkErr)
	}

	return total, nil
}

// Format renders a byte count with IEC units, such as "1.2 MiB".
func Format(size uint64) string {
	return humanize.IBytes(size)
}
