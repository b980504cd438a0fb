/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "github.com/humaidq/labextract/logging"

var appLogger = logging.Logger(logging.SourceApp)
var extractLogger = logging.Logger(logging.SourceExtract)
var exportLogger = logging.Logger(logging.SourceExport)
var requestStdLogger = logging.StdLogger(logging.SourceWebRequest)
