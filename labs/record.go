/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"strings"
	"time"
)

// Date layouts used by the report and by normalized output.
const (
	ReportDateLayout = "02.01.2006"
	ISODateLayout    = "2006-01-02"
)

// Record is a single lab result extracted from a report.
type Record struct {
	Category  Category `json:"category"`
	Biomarker string   `json:"biomarker"`
	// Date is the DD.MM.YYYY token as printed in the report.
	Date string `json:"date"`
	// Result is the measured value with the abnormal marker removed.
	Result    string `json:"result"`
	RawResult string `json:"raw_result"`
	// Qualitative is set for textual outcomes such as "Negative".
	Qualitative bool `json:"qualitative"`

	ReferenceMin     *float64 `json:"reference_min"`
	ReferenceMax     *float64 `json:"reference_max"`
	ReferenceMinText string   `json:"reference_min_text,omitempty"`
	ReferenceMaxText string   `json:"reference_max_text,omitempty"`

	Units    *string `json:"units"`
	Abnormal bool    `json:"abnormal"`
}

// ParsedDate parses the record date. ok is false when the date token is not
// a real calendar date.
func (r Record) ParsedDate() (time.Time, bool) {
	return ParseDate(r.Date)
}

// ISODate returns the date in YYYY-MM-DD form, or the raw date when it
// cannot be parsed.
func (r Record) ISODate() string {
	t, ok := r.ParsedDate()
	if !ok {
		return r.Date
	}

	return t.Format(ISODateLayout)
}

// Status returns "Abnormal" or "Normal".
func (r Record) Status() string {
	if r.Abnormal {
		return StatusAbnormal
	}

	return StatusNormal
}

// UnitString returns the unit, or an empty string when absent.
func (r Record) UnitString() string {
	if r.Units == nil {
		return ""
	}

	return *r.Units
}

// NumericResult parses the result as a number. Qualitative results and
// values that do not parse return ok false.
func (r Record) NumericResult() (float64, bool) {
	if r.Qualitative {
		return 0, false
	}

	return parseNumber(r.Result)
}

// Status labels used in exports.
const (
	StatusAbnormal = "Abnormal"
	StatusNormal   = "Normal"
)

// ParseDate accepts DD.MM.YYYY (report form) and YYYY-MM-DD (export form).
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)

	for _, layout := range []string{ReportDateLayout, ISODateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
