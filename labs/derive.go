/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"sort"
	"time"
)

// Abnormal returns the flagged records, preserving order.
func Abnormal(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Abnormal {
			out = append(out, r)
		}
	}

	return out
}

// TimelineEntry is one measurement of a biomarker.
type TimelineEntry struct {
	Date         string   `json:"date"`
	Result       string   `json:"result"`
	Value        *float64 `json:"value"`
	Status       string   `json:"status"`
	Abnormal     bool     `json:"abnormal"`
	Category     Category `json:"category"`
	Units        *string  `json:"units"`
	ReferenceMin *float64 `json:"reference_min"`
	ReferenceMax *float64 `json:"reference_max"`

	parsed   time.Time
	hasDate  bool
	position int
}

// BiomarkerTimeline is the chronological history of one biomarker.
type BiomarkerTimeline struct {
	Biomarker string          `json:"biomarker"`
	Entries   []TimelineEntry `json:"entries"`
}

// Timeline holds one BiomarkerTimeline per biomarker, in order of first
// appearance.
type Timeline []BiomarkerTimeline

// Find returns the timeline for a biomarker name.
func (t Timeline) Find(biomarker string) (BiomarkerTimeline, bool) {
	for _, bt := range t {
		if bt.Biomarker == biomarker {
			return bt, true
		}
	}

	return BiomarkerTimeline{}, false
}

// BuildTimeline groups records by biomarker and orders each group by date.
// Equal dates keep input order; unparseable dates go last.
func BuildTimeline(records []Record) Timeline {
	index := make(map[string]int)

	var timeline Timeline

	for i, r := range records {
		pos, ok := index[r.Biomarker]
		if !ok {
			pos = len(timeline)
			index[r.Biomarker] = pos
			timeline = append(timeline, BiomarkerTimeline{Biomarker: r.Biomarker})
		}

		timeline[pos].Entries = append(timeline[pos].Entries, newTimelineEntry(r, i))
	}

	for i := range timeline {
		sortEntries(timeline[i].Entries)
	}

	return timeline
}

func newTimelineEntry(r Record, position int) TimelineEntry {
	entry := TimelineEntry{
		Date:         r.ISODate(),
		Result:       r.Result,
		Status:       r.Status(),
		Abnormal:     r.Abnormal,
		Category:     r.Category,
		Units:        r.Units,
		ReferenceMin: r.ReferenceMin,
		ReferenceMax: r.ReferenceMax,
		position:     position,
	}

	if v, ok := r.NumericResult(); ok {
		entry.Value = &v
	}

	entry.parsed, entry.hasDate = r.ParsedDate()

	return entry
}

func sortEntries(entries []TimelineEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.hasDate != b.hasDate {
			return a.hasDate
		}

		return a.parsed.Before(b.parsed)
	})
}

// CategorySummary aggregates the records of one category.
type CategorySummary struct {
	Total            int `json:"total"`
	Abnormal         int `json:"abnormal"`
	UniqueBiomarkers int `json:"unique_biomarkers"`
}

// BiomarkerSummary counts measurements of one biomarker.
type BiomarkerSummary struct {
	Count    int `json:"count"`
	Abnormal int `json:"abnormal"`
}

// DateRange is the span of parseable record dates in ISO form.
type DateRange struct {
	Earliest *string `json:"earliest"`
	Latest   *string `json:"latest"`
}

// Summary is the aggregate view of an extraction run.
type Summary struct {
	Total      int                          `json:"total_tests"`
	Abnormal   int                          `json:"abnormal_tests"`
	Normal     int                          `json:"normal_tests"`
	Categories map[Category]CategorySummary `json:"categories"`
	Biomarkers map[string]BiomarkerSummary  `json:"biomarkers"`
	DateRange  DateRange                    `json:"date_range"`

	categoryOrder  []Category
	biomarkerOrder []string
}

// Summarize computes counts and the date range. Records with an unparseable
// date are left out of the date range only.
func Summarize(records []Record) Summary {
	summary := Summary{
		Categories: make(map[Category]CategorySummary),
		Biomarkers: make(map[string]BiomarkerSummary),
	}

	uniques := make(map[Category]map[string]struct{})

	var earliest, latest time.Time

	haveDate := false

	for _, r := range records {
		summary.Total++
		if r.Abnormal {
			summary.Abnormal++
		} else {
			summary.Normal++
		}

		cat, ok := summary.Categories[r.Category]
		if !ok {
			summary.categoryOrder = append(summary.categoryOrder, r.Category)
			uniques[r.Category] = make(map[string]struct{})
		}

		cat.Total++
		if r.Abnormal {
			cat.Abnormal++
		}

		uniques[r.Category][r.Biomarker] = struct{}{}
		cat.UniqueBiomarkers = len(uniques[r.Category])
		summary.Categories[r.Category] = cat

		bio, ok := summary.Biomarkers[r.Biomarker]
		if !ok {
			summary.biomarkerOrder = append(summary.biomarkerOrder, r.Biomarker)
		}

		bio.Count++
		if r.Abnormal {
			bio.Abnormal++
		}

		summary.Biomarkers[r.Biomarker] = bio

		t, ok := r.ParsedDate()
		if !ok {
			continue
		}

		if !haveDate || t.Before(earliest) {
			earliest = t
		}

		if !haveDate || t.After(latest) {
			latest = t
		}

		haveDate = true
	}

	if haveDate {
		e := earliest.Format(ISODateLayout)
		l := latest.Format(ISODateLayout)
		summary.DateRange = DateRange{Earliest: &e, Latest: &l}
	}

	return summary
}

// OrderedCategories returns the categories in order of first appearance.
func (s Summary) OrderedCategories() []Category {
	return append([]Category(nil), s.categoryOrder...)
}

// BiomarkerCount pairs a biomarker with its summary.
type BiomarkerCount struct {
	Biomarker string
	BiomarkerSummary
}

// MostTested returns up to n biomarkers ranked by measurement count. Ties
// keep first-appearance order. n <= 0 returns all of them.
func (s Summary) MostTested(n int) []BiomarkerCount {
	ranked := make([]BiomarkerCount, 0, len(s.biomarkerOrder))
	for _, name := range s.biomarkerOrder {
		ranked = append(ranked, BiomarkerCount{Biomarker: name, BiomarkerSummary: s.Biomarkers[name]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}
