/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errDatabaseURLRequired   = errors.New("database-url is required (set via --database-url or DATABASE_URL env var)")
	errMigrationNameRequired = errors.New("migration name is required")
	errInputRequired         = errors.New("one of --input or --csv is required")
	errInputConflict         = errors.New("--input and --csv cannot be used together")
	errPatientConflict       = errors.New("--patient and --patient-name cannot be used together")
	errOutDirRequired        = errors.New("--out-dir is required")
	errNoRecords             = errors.New("no lab records found in input")
)
