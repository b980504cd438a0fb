/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package importer

import "errors"

var (
	// ErrUnrecoverable marks store failures that should stop the whole run,
	// such as a lost database connection. Stores wrap it with %w.
	ErrUnrecoverable = errors.New("unrecoverable store error")
	// ErrNilStore is returned by Run when the importer has no store.
	ErrNilStore = errors.New("importer store is nil")
	// ErrPatientRequired is returned by Run when no patient ID was given.
	ErrPatientRequired  = errors.New("patient id is required")
	errMissingBiomarker = errors.New("record has no biomarker name")
	errInvalidDate      = errors.New("record date is not a valid calendar date")
)
