/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errUnknownBiomarker = errors.New("unknown biomarker")
	errInvalidFilter    = errors.New("invalid filter value")
)
