/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"math"
	"strconv"
	"strings"
)

const (
	// Placeholder marks an absent range or unit in the report.
	Placeholder = "—"
	// AbnormalMarker trails results outside the reference range.
	AbnormalMarker = "*"
)

// rangeSeparators are tried in order. The plain hyphen is last because it
// doubles as a sign on negative bounds.
var rangeSeparators = []string{"−", "–"}

var qualitativeResults = map[string]bool{
	"undetected":   true,
	"detected":     true,
	"negative":     true,
	"positive":     true,
	"negativo":     true,
	"positivo":     true,
	"detectado":    true,
	"indetectable": true,
}

// IsQualitative reports whether a result token (marker included or not) is
// one of the recognised textual outcomes.
func IsQualitative(token string) bool {
	clean, _ := parseResult(token)
	return qualitativeResults[strings.ToLower(clean)]
}

// parseResult strips the trailing abnormal marker.
func parseResult(raw string) (string, bool) {
	clean := strings.TrimSpace(raw)
	if !strings.HasSuffix(clean, AbnormalMarker) {
		return clean, false
	}

	return strings.TrimSpace(strings.TrimRight(clean, AbnormalMarker)), true
}

// referenceRange holds both renditions of a reference range: the bounds as
// printed, and their numeric values when they convert.
type referenceRange struct {
	minText string
	maxText string
	min     *float64
	max     *float64
}

// parseReferenceRange splits a range token such as "70.26 − 99.09". It
// never fails: unusable input yields an empty range.
func parseReferenceRange(text string) referenceRange {
	text = strings.TrimSpace(text)
	if text == "" || text == Placeholder {
		return referenceRange{}
	}

	low, high, ok := splitRange(text)
	if !ok {
		return referenceRange{}
	}

	rr := referenceRange{
		minText: strings.TrimSpace(low),
		maxText: strings.TrimSpace(high),
	}

	minVal, ok := parseBound(rr.minText)
	if !ok {
		return rr
	}

	if rr.maxText == "" {
		rr.min = &minVal
		return rr
	}

	maxVal, ok := parseBound(rr.maxText)
	if !ok {
		return rr
	}

	rr.min = &minVal
	rr.max = &maxVal

	return rr
}

func splitRange(text string) (string, string, bool) {
	for _, sep := range rangeSeparators {
		if strings.Contains(text, sep) {
			parts := strings.Split(text, sep)
			return parts[0], parts[1], true
		}
	}

	// A leading hyphen is the sign of the lower bound.
	start := 0
	if strings.HasPrefix(text, "-") {
		start = 1
	}

	idx := strings.Index(text[start:], "-")
	if idx < 0 {
		return "", "", false
	}

	idx += start

	return text[:idx], text[idx+1:], true
}

// parseBound converts a printed bound to a number. Thousands separators and
// the K/M magnitude letters are dropped without scaling, so "3.4K" is 3.4.
func parseBound(text string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', 'K', 'M':
			return -1
		}
		return r
	}, text)

	return parseNumber(cleaned)
}

// ParseBound converts a printed reference bound with the extractor's rules.
// It returns nil for empty, placeholder or non-numeric bounds.
func ParseBound(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" || text == Placeholder {
		return nil
	}

	v, ok := parseBound(text)
	if !ok {
		return nil
	}

	return &v
}

// parseNumber parses a plain decimal, ignoring thousands separators.
func parseNumber(text string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}

// parseUnits returns nil for the placeholder.
func parseUnits(token string) *string {
	token = strings.TrimSpace(token)
	if token == "" || token == Placeholder {
		return nil
	}

	return &token
}
