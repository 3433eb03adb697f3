package common

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

type sortableString struct {
	value     string
	isNumber  bool    // True when the value is a number without any other text
	hasNumber bool    // True when the value contains digits, like the "20" in "E20"
	number    float64 // Only contains a useful value when hasNumber is true
}

func toSortableString(s string) sortableString {
	sortable := sortableString{
		value: s,
	}

	digits := extractDigits(s)
	sortable.hasNumber = digits != ""
	sortable.isNumber = sortable.hasNumber && len(digits) == len(s)

	if sortable.hasNumber {
		sortable.number, _ = strconv.ParseFloat(digits, 64)
	}
	return sortable
}

func (s sortableString) isLessThan(other sortableString) bool {
	if s.hasNumber && other.hasNumber && s.number != other.number {
		return s.number < other.number
	}
	if s.hasNumber && other.hasNumber && s.isNumber != other.isNumber {
		// "1" comes before "E1"
		return s.isNumber
	}
	return s.value < other.value
}

// Sort orders the values by the numbers they contain, so that "E2" comes before "E19", and uses the plain string order
// otherwise. Surrounding whitespace is removed.
func Sort(values []string) []string {
	sortableStrings := make([]sortableString, len(values))
	for i, s := range values {
		sortableStrings[i] = toSortableString(strings.TrimSpace(s))
	}

	sort.SliceStable(sortableStrings, func(i, j int) bool {
		return sortableStrings[i].isLessThan(sortableStrings[j])
	})

	sortedStrings := make([]string, len(sortableStrings))
	for i, s := range sortableStrings {
		sortedStrings[i] = s.value
	}

	return sortedStrings
}

// IsLessThan returns true if s1 appears before s2 in a list ordered by Sort.
func IsLessThan(s1, s2 string) bool {
	return toSortableString(s1).isLessThan(toSortableString(s2))
}

// extractDigits returns the first consecutive run of digits, so "E4" results in "4" and "C2-1" in "2".
func extractDigits(s string) string {
	var digits []rune
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		} else if len(digits) > 0 {
			break
		}
	}
	return string(digits)
}
