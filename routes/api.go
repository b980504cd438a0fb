/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flamego/flamego"

	"github.com/humaidq/labextract/export"
	"github.com/humaidq/labextract/labs"
)

// Index describes the report and the available endpoints.
func Index(c flamego.Context, r *Report) {
	writeJSON(c, http.StatusOK, map[string]any{
		"source":     r.Source,
		"records":    len(r.Records),
		"biomarkers": len(r.Timeline),
		"endpoints": []string{
			"/api/summary",
			"/api/records?abnormal=true",
			"/api/biomarkers",
			"/api/timeline",
			"/api/timeline/{biomarker}",
			"/chart/{biomarker}",
		},
	})
}

// Summary returns the report summary.
func Summary(c flamego.Context, r *Report) {
	writeJSON(c, http.StatusOK, r.Summary)
}

// Records returns all records, or only abnormal ones with ?abnormal=true.
func Records(c flamego.Context, r *Report) {
	abnormalOnly := false

	if raw := c.Query("abnormal"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, fmt.Sprintf("%v: abnormal=%q", errInvalidFilter, raw))
			return
		}

		abnormalOnly = v
	}

	records := r.Records
	if abnormalOnly {
		records = r.Abnormal
	}

	if records == nil {
		records = []labs.Record{}
	}

	writeJSON(c, http.StatusOK, records)
}

// Biomarkers lists biomarkers by measurement count.
func Biomarkers(c flamego.Context, r *Report) {
	writeJSON(c, http.StatusOK, r.Summary.MostTested(0))
}

// Timeline returns every biomarker timeline.
func Timeline(c flamego.Context, r *Report) {
	timeline := r.Timeline
	if timeline == nil {
		timeline = labs.Timeline{}
	}

	writeJSON(c, http.StatusOK, timeline)
}

type biomarkerTimelineResponse struct {
	labs.BiomarkerTimeline
	Trend labs.Trend `json:"trend"`
}

// BiomarkerTimeline returns one biomarker's entries with a trend analysis.
func BiomarkerTimeline(c flamego.Context, r *Report) {
	bt, err := findBiomarker(c, r)
	if err != nil {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(c, http.StatusOK, biomarkerTimelineResponse{
		BiomarkerTimeline: bt,
		Trend:             labs.AnalyzeTrend(bt.Entries),
	})
}

// Chart renders one biomarker's trend as an HTML page.
func Chart(c flamego.Context, r *Report) {
	bt, err := findBiomarker(c, r)
	if err != nil {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := export.RenderTrendChart(&buf, bt); err != nil {
		if errors.Is(err, export.ErrNoNumericData) {
			writeError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}

		internalError(c, err)

		return
	}

	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(buf.Bytes()); err != nil {
		requestLogger.Warn("Failed to write chart", "biomarker", bt.Biomarker, "error", err)
	}
}

func findBiomarker(c flamego.Context, r *Report) (labs.BiomarkerTimeline, error) {
	name := strings.TrimSpace(c.Param("biomarker"))

	if bt, ok := r.Timeline.Find(name); ok {
		return bt, nil
	}

	// Names may arrive still escaped, and some contain a literal "%".
	if unescaped, err := url.PathUnescape(name); err == nil {
		if bt, ok := r.Timeline.Find(unescaped); ok {
			return bt, nil
		}
	}

	return labs.BiomarkerTimeline{}, fmt.Errorf("%w: %q", errUnknownBiomarker, name)
}
