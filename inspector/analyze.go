package inspector

import "unicode"

// DefaultAnalyzeLimit caps the per-character details returned by Analyze.
const DefaultAnalyzeLimit = 20

// CharDetail is the analysis of one character of a text.
type CharDetail struct {
	Index  int    `json:"index"`
	Char   rune   `json:"char"`
	Found  bool   `json:"found"`
	Result Result `json:"result"`
}

// Analysis summarises how convertible a text is.
type Analysis struct {
	Length      int          `json:"length"`
	Convertible int          `json:"convertible"`
	Details     []CharDetail `json:"details"`
	Omitted     int          `json:"omitted"`
}

// Analyze counts the characters of text any configured layout knows and
// inspects the first limit characters. Blank characters are counted but not
// detailed. A limit <= 0 uses DefaultAnalyzeLimit.
func (i *Inspector) Analyze(text string, limit int) Analysis {
	if limit <= 0 {
		limit = DefaultAnalyzeLimit
	}
	var a Analysis
	for _, r := range text {
		pos := a.Length
		a.Length++
		res, ok := i.Inspect(r)
		if ok {
			a.Convertible++
		}
		if pos < limit && !unicode.IsSpace(r) {
			a.Details = append(a.Details, CharDetail{Index: pos, Char: r, Found: ok, Result: res})
		}
	}
	if a.Length > limit {
		a.Omitted = a.Length - limit
	}
	return a
}
