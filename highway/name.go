package highway

import "strings"

// Names containing one of these denote ramps, interchange entrances, construction sites or connector roads.
var excludedNameMarkers = []string{
	"入口",
	"出口",
	"ランプ",
	"高架橋",
	"高架路",
	"新設工事",
	"連絡道路",
}

// Joins two route names like in "首都高速川口線-中央環状線".
const compoundRouteMarker = "線-"

var highwayNamePatterns = []string{
	"高速",
	"自動車道",
	"京葉道路",
}

var directionSuffixes = []string{
	"上り",
	"下り",
	"外回り",
	"内回り",
	"東行き",
	"西行き",
	"北行き",
	"南行き",
}

// Half and full width opening parentheses. Everything from the first one on is an annotation like "（上り）".
const openingParentheses = "(（"

// NormalizeName extracts the base name of a highway from a raw route name, e.g. "東名高速道路" from
// "東名高速道路（上り）". False is returned for names not describing a highway route.
func NormalizeName(name string) (string, bool) {
	for _, marker := range excludedNameMarkers {
		if strings.Contains(name, marker) {
			return "", false
		}
	}

	if strings.Contains(name, compoundRouteMarker) {
		return "", false
	}

	if !containsAny(name, highwayNamePatterns) {
		return "", false
	}

	baseName := name
	if i := strings.IndexAny(baseName, openingParentheses); i >= 0 {
		baseName = baseName[:i]
	}
	baseName = strings.TrimSpace(baseName)

	for _, suffix := range directionSuffixes {
		if strings.HasSuffix(baseName, suffix) {
			baseName = strings.TrimSuffix(baseName, suffix)
			break
		}
	}

	baseName = strings.TrimSpace(baseName)
	if baseName == "" {
		return "", false
	}

	return baseName, true
}

func containsAny(s string, substrings []string) bool {
	for _, substring := range substrings {
		if strings.Contains(s, substring) {
			return true
		}
	}
	return false
}
