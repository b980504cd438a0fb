/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"errors"
	"fmt"
)

var (
	// ErrDatabaseURLEnvVarNotSet is returned when DATABASE_URL is empty.
	ErrDatabaseURLEnvVarNotSet = errors.New("DATABASE_URL environment variable is not set")
	// ErrDatabaseNameNotSpecified is returned when the URL has no database name.
	ErrDatabaseNameNotSpecified = errors.New("database name not specified in DATABASE_URL")
	// ErrDatabaseConnectionNotInitialized is returned before Init succeeds.
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
	// ErrNoPatient is returned when no patient exists to import into.
	ErrNoPatient = errors.New("no patient found; create one first")
	// ErrInvalidID is returned for identifiers that are not UUIDs.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrInvalidPatientID is returned for patient identifiers that are not
	// UUIDs. It wraps ErrInvalidID.
	ErrInvalidPatientID = fmt.Errorf("%w: patient", ErrInvalidID)
	// ErrPatientNameRequired is returned by CreatePatient for a blank name.
	ErrPatientNameRequired = errors.New("patient name is required")
)
