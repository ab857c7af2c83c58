package ai

import (
	"regexp"
	"strconv"
)

const scoreInputLimit = 1000

var scoreDigits = regexp.MustCompile(`-?\d+`)

// ParseScore extracts the first integer of a model reply and clamps it to
// [0,100]. A reply without digits yields 0.
func ParseScore(text string) int {
	match := scoreDigits.FindString(text)
	if match == "" {
		return 0
	}

	v, err := strconv.Atoi(match)
	if err != nil {
		// only overflow can get here; the sign decides the clamp side
		if match[0] == '-' {
			return 0
		}
		return 100
	}

	return clamp(v)
}

// TruncateInput cuts a scoring input to the prefix sent to the provider.
func TruncateInput(s string) string {
	runes := []rune(s)
	if len(runes) <= scoreInputLimit {
		return s
	}
	return string(runes[:scoreInputLimit])
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
