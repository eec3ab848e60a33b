package render

import (
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Sumatoshi-tech/gitpulse/pkg/activity"
)

// Glyph is the character drawn for every calendar day.
const Glyph = "█"

// LevelColors maps intensity levels to their hex colors.
var LevelColors = map[activity.Level]string{
	activity.LevelNone:   "#282828",
	activity.LevelLow:    "#FACC15",
	activity.LevelMedium: "#FB923C",
	activity.LevelHigh:   "#86EFAC",
	activity.LevelMax:    "#22C55E",
}

// ColorEnabled reports whether output to f should be colored: not disabled
// by flag or NO_COLOR, and f is a terminal.
func ColorEnabled(noColorFlag bool, f *os.File) bool {
	if noColorFlag {
		return false
	}

	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}

	return f != nil && term.IsTerminal(int(f.Fd()))
}

// painter applies colors when enabled and passes text through otherwise.
type painter struct {
	enabled bool
}

func (p painter) paint(c *color.Color, s string) string {
	if !p.enabled {
		return s
	}

	c.EnableColor()

	return c.Sprint(s)
}

func (p painter) attrs(s string, attrs ...color.Attribute) string {
	return p.paint(color.New(attrs...), s)
}

func (p painter) hex(hexColor, s string) string {
	r, g, b, ok := parseHex(hexColor)
	if !ok {
		return s
	}

	return p.paint(color.RGB(r, g, b), s)
}

func (p painter) glyph(level activity.Level) string {
	return p.hex(LevelColors[level], Glyph)
}

func parseHex(hexColor string) (r, g, b int, ok bool) {
	hexColor = strings.TrimPrefix(hexColor, "#")
	if len(hexColor) != 6 {
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(hexColor, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}
