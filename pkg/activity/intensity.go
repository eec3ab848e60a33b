package activity

// Level is a discrete 0-4 intensity relative to the busiest day in the window.
type Level int

// Intensity levels.
const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelMax
)

// Levels lists every level in ascending order.
var Levels = []Level{LevelNone, LevelLow, LevelMedium, LevelHigh, LevelMax}

// Classify maps count to ceil(count/maxCount*4) clamped to [1, 4], or 0 when
// there are no commits. maxCount is floored at 1.
func Classify(count, maxCount int) Level {
	if count <= 0 {
		return LevelNone
	}

	maxCount = max(maxCount, 1)

	// Integer ceil(count*4/maxCount).
	level := (count*int(LevelMax) + maxCount - 1) / maxCount

	return Level(min(max(level, int(LevelLow)), int(LevelMax)))
}

// MaxCount returns the largest bucket value, never less than 1.
func MaxCount(b Buckets) int {
	highest := 1

	for _, count := range b {
		highest = max(highest, count)
	}

	return highest
}
