package activity

import "time"

// MonthAbbr returns the three-letter English abbreviation of m.
func MonthAbbr(m time.Month) string {
	if m < time.January || m > time.December {
		return "   "
	}

	return m.String()[:3]
}
