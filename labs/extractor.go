/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"
)

// minRecordTokens is biomarker, date, result, range and units.
const minRecordTokens = 5

var dateTokenPattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// Extractor turns report text into lab records. It holds only its
// configuration, so one value can be reused for any number of reports.
type Extractor struct {
	headers []headerKey
	logger  *log.Logger
}

type headerKey struct {
	key      string
	category Category
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithHeaders replaces the default header table.
func WithHeaders(headers []HeaderMapping) Option {
	return func(e *Extractor) {
		e.headers = buildHeaderKeys(headers)
	}
}

// WithLogger attaches a logger that receives a debug entry for every
// skipped line.
func WithLogger(logger *log.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor returns an Extractor using DefaultHeaders unless overridden.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{headers: buildHeaderKeys(DefaultHeaders)}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract parses text with the default header table.
func Extract(text string) []Record {
	return NewExtractor().Extract(text)
}

func buildHeaderKeys(headers []HeaderMapping) []headerKey {
	keys := make([]headerKey, 0, len(headers))
	for _, h := range headers {
		key := normalizeHeader(h.Header)
		if key == "" {
			continue
		}
		keys = append(keys, headerKey{key: key, category: h.Category})
	}

	return keys
}

func normalizeHeader(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// Extract returns the records found in text in the order they appear.
// Lines that are not headers or complete records are skipped.
func (e *Extractor) Extract(text string) []Record {
	var (
		records      []Record
		current      Category
		haveCategory bool
	)

	for i, raw := range strings.Split(text, "\n") {
		line := norm.NFC.String(strings.TrimSpace(raw))
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		record, isRecord := parseRecordLine(fields, findDateToken(fields))

		if category, ok := e.matchHeader(line, isRecord); ok {
			current = category
			haveCategory = true
			continue
		}

		if !isRecord {
			e.skip(i+1, "no record pattern", line)
			continue
		}

		if !haveCategory {
			e.skip(i+1, "no category", line)
			continue
		}

		record.Category = current
		records = append(records, record)
	}

	return records
}

// matchHeader tries an exact match over the whole table before falling back
// to substring matching. Complete record lines are never substring matched,
// so a biomarker that mentions a section name stays a record.
func (e *Extractor) matchHeader(line string, isRecord bool) (Category, bool) {
	key := strings.ToLower(line)

	for _, h := range e.headers {
		if key == h.key {
			return h.category, true
		}
	}

	if isRecord {
		return "", false
	}

	for _, h := range e.headers {
		if strings.Contains(key, h.key) {
			return h.category, true
		}
	}

	return "", false
}

func (e *Extractor) skip(lineNo int, reason, line string) {
	if e.logger == nil {
		return
	}

	e.logger.Debug("Skipped line", "line", lineNo, "reason", reason, "text", line)
}

func findDateToken(fields []string) int {
	for i, f := range fields {
		if dateTokenPattern.MatchString(f) {
			return i
		}
	}

	return -1
}

// parseRecordLine builds a record (without category) from a tokenized line.
// The biomarker is every token before the date.
func parseRecordLine(fields []string, dateIdx int) (Record, bool) {
	if len(fields) < minRecordTokens || dateIdx <= 0 || dateIdx+1 >= len(fields) {
		return Record{}, false
	}

	rawResult := fields[dateIdx+1]
	result, abnormal := parseResult(rawResult)
	// A bare "*" carries no result.
	if result == "" {
		return Record{}, false
	}

	record := Record{
		Biomarker: strings.Join(fields[:dateIdx], " "),
		Date:      fields[dateIdx],
		Result:    result,
		RawResult: rawResult,
		Abnormal:  abnormal,
	}

	last := fields[len(fields)-1]

	var rangeText string

	if IsQualitative(rawResult) {
		record.Qualitative = true

		if dateIdx+2 < len(fields) {
			rangeText = fields[dateIdx+2]
		}

		if last != rawResult && last != result && last != rangeText {
			record.Units = parseUnits(last)
		}
	} else {
		record.Units = parseUnits(last)

		rangeText = Placeholder
		if dateIdx+2 < len(fields)-1 {
			rangeText = strings.Join(fields[dateIdx+2:len(fields)-1], " ")
		}
	}

	rr := parseReferenceRange(rangeText)
	record.ReferenceMin = rr.min
	record.ReferenceMax = rr.max
	record.ReferenceMinText = rr.minText
	record.ReferenceMaxText = rr.maxText

	return record, true
}
