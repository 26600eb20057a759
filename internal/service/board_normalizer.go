package service

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Canonical board codes. Boards are informational and never change scoring.
const (
	BoardCBSE  = "cbse"
	BoardICSE  = "icse"
	BoardState = "state"
	BoardIB    = "ib"
	BoardIGCSE = "igcse"
)

const boardMatchThreshold = 0.88

var boardAliases = map[string][]string{
	BoardCBSE:  {"cbse", "central board of secondary education"},
	BoardICSE:  {"icse", "isc", "cisce", "council for the indian school certificate examinations"},
	BoardState: {"state", "sslc", "kseeb", "pue", "puc", "state secondary education"},
	BoardIB:    {"ib", "international baccalaureate"},
	BoardIGCSE: {"igcse", "cambridge", "cambridge international"},
}

// BoardNormalizer maps free-text board names onto canonical codes using
// Jaro-Winkler similarity.
type BoardNormalizer struct {
	metric    *metrics.JaroWinkler
	threshold float64
}

// NewBoardNormalizer constructs a normalizer with the default threshold.
func NewBoardNormalizer() *BoardNormalizer {
	return &BoardNormalizer{metric: metrics.NewJaroWinkler(), threshold: boardMatchThreshold}
}

// Normalize returns the canonical board code and true when the input could be
// matched; otherwise the cleaned input and false.
func (n *BoardNormalizer) Normalize(raw string) (string, bool) {
	cleaned := cleanBoard(raw)
	if cleaned == "" {
		return "", false
	}

	bestCode, bestScore := "", 0.0
	for code, aliases := range boardAliases {
		for _, alias := range aliases {
			if cleaned == alias {
				return code, true
			}
			score := strutil.Similarity(cleaned, alias, n.metric)
			if score > bestScore || (score == bestScore && code < bestCode) {
				bestCode, bestScore = code, score
			}
		}
	}
	if bestScore >= n.threshold {
		return bestCode, true
	}
	if strings.Contains(cleaned, "state") {
		return BoardState, true
	}
	return cleaned, false
}

func cleanBoard(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.NewReplacer(".", "", "-", " ", "_", " ").Replace(cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	cleaned = strings.TrimSuffix(cleaned, " board")
	return strings.TrimSpace(cleaned)
}
