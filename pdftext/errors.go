/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pdftext

import "errors"

var (
	// ErrUnsupportedInput is returned for files that are neither PDF nor text.
	ErrUnsupportedInput = errors.New("unsupported input type")
	// ErrNoText is returned when a readable file yields no text, as with
	// scanned reports.
	ErrNoText = errors.New("no text found in input")
)
