/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package pdftext loads lab report text from PDF or plain text files.
package pdftext

import (
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeText = "text/plain"
)

// Load returns the text of the report at path. The type is detected from
// the file content, not its extension.
func Load(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to detect type of %s: %w", path, err)
	}

	switch {
	case mtype.Is(mimePDF):
		return FromPDF(path)
	case isText(mtype):
		return fromText(path)
	default:
		return "", fmt.Errorf("%w: %s is %s", ErrUnsupportedInput, path, mtype.String())
	}
}

// isText walks the MIME hierarchy so CSV and other text subtypes count.
func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(mimeText) {
			return true
		}
	}

	return false
}

func fromText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	text := strings.TrimPrefix(string(data), "\ufeff")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoText, path)
	}

	return text, nil
}

// FromPDF extracts plain text page by page. Pages that fail to decode are
// skipped.
func FromPDF(path string) (text string, err error) {
	// The PDF reader panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to read PDF %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("Skipping unreadable page", "path", path, "page", i, "error", err)
			continue
		}

		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text = strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: %s may be scanned or image-based", ErrNoText, path)
	}

	return text, nil
}
