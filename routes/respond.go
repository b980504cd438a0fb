/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/labextract/export"
)

func writeJSON(c flamego.Context, status int, v any) {
	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := export.WriteJSON(w, v); err != nil {
		requestLogger.Error("Failed to write response", "path", c.Request().URL.Path, "error", err)
	}
}

func writeError(c flamego.Context, status int, message string) {
	writeJSON(c, status, map[string]string{"error": message})
}

// internalError logs err and answers with a generic 500.
func internalError(c flamego.Context, err error) {
	requestLogger.Error("Request failed", "path", c.Request().URL.Path, "error", err)
	writeError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
