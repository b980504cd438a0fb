/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "github.com/humaidq/labextract/labs"

// Report is an extracted report with its derived views computed once.
// Handlers only read it.
type Report struct {
	Source   string
	Records  []labs.Record
	Abnormal []labs.Record
	Summary  labs.Summary
	Timeline labs.Timeline
}

// NewReport derives the summary, abnormal subset and timeline for records.
func NewReport(source string, records []labs.Record) *Report {
	return &Report{
		Source:   source,
		Records:  records,
		Abnormal: labs.Abnormal(records),
		Summary:  labs.Summarize(records),
		Timeline: labs.BuildTimeline(records),
	}
}
