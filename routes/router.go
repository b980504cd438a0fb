/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package routes serves a read-only view of an extracted lab report.
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
)

// NewRouter returns the viewer handler for report.
func NewRouter(report *Report) *flamego.Flame {
	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(RequestLogger)
	f.Use(NoCacheHeaders())
	f.Map(report)

	f.Get("/", Index)
	f.Group("/api", func() {
		f.Get("/summary", Summary)
		f.Get("/records", Records)
		f.Get("/biomarkers", Biomarkers)
		f.Get("/timeline", Timeline)
		f.Get("/timeline/{biomarker: **}", BiomarkerTimeline)
	})
	f.Get("/chart/{biomarker: **}", Chart)

	f.NotFound(func(c flamego.Context) {
		writeError(c, http.StatusNotFound, "not found")
	})

	return f
}
