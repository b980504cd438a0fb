/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package pdftext

import "github.com/humaidq/labextract/logging"

var logger = logging.Logger(logging.SourceExtract)
