package util

import "strings"

// ParseBool accepts the usual query spellings (1, true, yes)
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
