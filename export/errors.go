/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package export

import "errors"

var (
	// ErrMissingColumn is returned by ReadCSV when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrNoNumericData is returned by RenderTrendChart when no entry has a
	// numeric value to plot.
	ErrNoNumericData = errors.New("no numeric values to chart")
)
