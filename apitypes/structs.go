package apitypes

import (
	"fmt"
	"strconv"
	"strings"
)

// ApiError represents an RFC 7807 (problem+json) error response.
type ApiError struct {
	// Status is the HTTP-style status code (e.g., 400, 404, 500)
	Status int `json:"status"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail"`
}

func (e ApiError) Error() string {
	if e.Status == 0 && e.Title == "" {
		return "unknown error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// --

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

type Layout struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Keys        int    `json:"keys"`
}

type LayoutsResponse struct {
	Layouts []Layout `json:"layouts"`
}

type KeyDefinition struct {
	Key      string `json:"key"`
	Code     string `json:"code"`
	KeyCode  int    `json:"keyCode,omitempty"`
	ShiftKey bool   `json:"shiftKey,omitempty"`
}

// LayoutChar is what one layout types at an inspected position.
// Char is null when the layout has nothing there.
type LayoutChar struct {
	Layout string  `json:"layout"`
	Char   *string `json:"char"`
}

type InspectResponse struct {
	Char          string        `json:"char"`
	Layout        string        `json:"layout"`
	KeyDefinition KeyDefinition `json:"keyDefinition"`
	Layouts       []LayoutChar  `json:"layouts"`
}

type ConvertResponse struct {
	Layout string `json:"layout"`
	Text   string `json:"text"`
}

type Variant struct {
	Layout string `json:"layout"`
	Text   string `json:"text"`
}

type VariantsResponse struct {
	Variants []Variant `json:"variants"`
	Best     *Variant  `json:"best"`
}

type CharDetail struct {
	Index      int              `json:"index"`
	Char       string           `json:"char"`
	Inspection *InspectResponse `json:"inspection"`
}

type AnalyzeResponse struct {
	Length      int          `json:"length"`
	Convertible int          `json:"convertible"`
	Omitted     int          `json:"omitted"`
	Characters  []CharDetail `json:"characters"`
}

// ParseNumber accepts a decimal number or a hex string like "0x51" and checks
// it fits into bits.
func ParseNumber(s string, bits int) (uint64, error) {
	v := strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(strings.ToLower(v), "0x") {
		v = v[2:]
		base = 16
	} else if strings.ContainsAny(v, "abcdefABCDEF") {
		base = 16
	}
	parsed, err := strconv.ParseUint(v, base, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid hex/numeric string %q: %w", s, err)
	}
	return parsed, nil
}
