package config

// Calendar defaults.
const (
	DefaultTimezone  = "Local"
	DefaultWeekStart = "sunday"
)

// Contributor defaults.
const (
	DefaultContributorsLimit = 1000
	DefaultContributorsTop   = 3
)

// Language scanner defaults.
const (
	DefaultLanguagesTop       = 5
	DefaultLanguagesGitignore = false
)

// Output defaults.
const (
	DefaultOutputFormat = "text"
	DefaultOutputColor  = true
)

// DefaultScanExclude lists patterns the language scanner never enters.
func DefaultScanExclude() []string {
	return []string{"target", "node_modules", "vendor"}
}

// DefaultSizeExclude lists patterns left out of the repository size.
func DefaultSizeExclude() []string {
	return []string{".git", "target", "node_modules"}
}
