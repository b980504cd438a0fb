/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package importer

import "github.com/humaidq/labextract/logging"

var logger = logging.Logger(logging.SourceImport)
