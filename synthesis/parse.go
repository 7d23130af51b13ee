package synthesis

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/avaldezm/newsight/models"
)

// rawReport mirrors the JSON shape requested in the prompt plus the aliases
// models actually emit in practice.
type rawReport struct {
	Summary          string   `json:"summary"`
	KeyPoints        []string `json:"keyPoints"`
	Suggestions      []string `json:"suggestions"`
	Recommendations  []string `json:"recommendations"`
	Sentiment        string   `json:"sentiment"`
	RelevantArticles []int    `json:"relevantArticles"`
	RelevantIndices  []int    `json:"relevantIndices"`
}

func (r rawReport) toReport() models.Report {
	suggestions := r.Suggestions
	if len(suggestions) == 0 {
		suggestions = r.Recommendations
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	keyPoints := r.KeyPoints
	if keyPoints == nil {
		keyPoints = []string{}
	}
	indices := r.RelevantArticles
	if len(indices) == 0 {
		indices = r.RelevantIndices
	}
	if indices == nil {
		indices = []int{}
	}
	return models.Report{
		Summary:         r.Summary,
		KeyPoints:       keyPoints,
		Suggestions:     suggestions,
		Sentiment:       models.ParseSentiment(r.Sentiment),
		RelevantIndices: indices,
	}
}

// parseAttempt tries to turn raw model output into a report. A false return
// means the next attempt in the chain should run.
type parseAttempt func(text string) (models.Report, bool)

// parseChain lists the attempts in order: strict parse, loose normalization,
// then balanced-object extraction out of surrounding prose.
var parseChain = []parseAttempt{parseDirect, parseLoose, parseExtracted}

// ParseReport runs the chain over the model output. ok is false only if every
// attempt failed; a parse that succeeds with missing fields still counts,
// with the absent fields defaulted rather than rejected.
func ParseReport(text string) (models.Report, bool) {
	for _, attempt := range parseChain {
		if report, ok := attempt(text); ok {
			return report, true
		}
	}
	return models.Report{}, false
}

func parseDirect(text string) (models.Report, bool) {
	var raw rawReport
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return models.Report{}, false
	}
	return raw.toReport(), true
}

var (
	jsonPrefixPattern   = regexp.MustCompile(`(?i)^json\s*`)
	fenceJSONPattern    = regexp.MustCompile("(?i)^```json\\s*")
	fencePattern        = regexp.MustCompile("^```\\s*")
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
)

// parseLoose normalizes the usual model quirks before parsing: BOM, a bare
// "json" prefix, surrounding quotes, code fences, typographic quotes,
// trailing commas, and escaped newlines.
func parseLoose(text string) (models.Report, bool) {
	candidate := normalize(text)
	if candidate == "" {
		return models.Report{}, false
	}
	return parseDirect(candidate)
}

func normalize(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "\uFEFF")
	text = jsonPrefixPattern.ReplaceAllString(text, "")

	if len(text) >= 2 {
		if (strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`)) ||
			(strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'")) {
			text = text[1 : len(text)-1]
		}
	}

	if strings.HasPrefix(text, "```") {
		text = fenceJSONPattern.ReplaceAllString(text, "")
		text = fencePattern.ReplaceAllString(text, "")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	replacer := strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
	text = replacer.Replace(text)

	text = trailingCommaObject.ReplaceAllString(text, "}")
	text = trailingCommaArray.ReplaceAllString(text, "]")

	text = strings.ReplaceAll(text, `\n`, "\n")
	return strings.TrimSpace(text)
}

// parseExtracted digs the first balanced JSON object out of prose. It runs on
// the normalized text so a fenced object inside chatter still gets found.
func parseExtracted(text string) (models.Report, bool) {
	candidate := normalize(text)
	start := strings.IndexByte(candidate, '{')
	for start != -1 && start < len(candidate) {
		if object, ok := balancedObjectAt(candidate, start); ok {
			if report, parsed := parseDirect(object); parsed {
				return report, true
			}
		}
		next := strings.IndexByte(candidate[start+1:], '{')
		if next == -1 {
			break
		}
		start += 1 + next
	}
	return models.Report{}, false
}

// balancedObjectAt returns the balanced {...} starting at startIdx, tracking
// strings and escape sequences so braces inside values don't count.
func balancedObjectAt(s string, startIdx int) (string, bool) {
	if startIdx >= len(s) || s[startIdx] != '{' {
		return "", false
	}
	depth := 1
	inString := false
	escape := false
	for i := startIdx + 1; i < len(s); i++ {
		c := s[i]
		if inString {
			if escape {
				escape = false
				continue
			}
			switch c {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[startIdx : i+1], true
			}
		}
	}
	return "", false
}
