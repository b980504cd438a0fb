// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/humaidq/labextract/importer"
	"github.com/humaidq/labextract/labs"
)

const sampleReport = `Signos Vitales
Altura 15.09.2025 178.00 — cm
Análisis bioquímicos (sangre)
Glucosa 06.09.2025 78 70.26 − 99.09 mg/dL
Glucosa 07.06.2025 113* 70.26 − 99.09 mg/dL
Análisis general de orina
Nitritos orina cualitativo 06.10.2024 Detected* Undetected —
`

func writeReport(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(path, []byte(sampleReport), 0o600); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}

	return path
}

func TestWriteArtifacts(t *testing.T) {
	t.Parallel()

	records, err := extractFile(writeReport(t))
	if err != nil {
		t.Fatalf("extractFile failed: %v", err)
	}

	outDir := filepath.Join(t.TempDir(), "out")

	result, err := writeArtifacts(records, outDir, extractOptions{Charts: true})
	if err != nil {
		t.Fatalf("writeArtifacts failed: %v", err)
	}

	for _, name := range []string{CSVFileName, AbnormalCSVFileName, SummaryFileName, TimelineFileName} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
	}

	abnormal, err := readCSVFile(filepath.Join(outDir, AbnormalCSVFileName))
	if err != nil {
		t.Fatalf("readCSVFile failed: %v", err)
	}

	if len(abnormal) != 2 {
		t.Fatalf("expected 2 abnormal rows, got %d", len(abnormal))
	}

	// Nitrites are qualitative, so only Altura and Glucosa get charts.
	if result.Charts != 2 {
		t.Fatalf("expected 2 charts, got %d", result.Charts)
	}

	if _, err := os.Stat(filepath.Join(outDir, ChartsDirName, "Glucosa.html")); err != nil {
		t.Fatalf("expected Glucosa chart: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, ChartsDirName, "Nitritos_orina_cualitativo.html")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no chart for qualitative results, got %v", err)
	}

	var out bytes.Buffer
	printSummary(&out, result)

	for _, want := range []string{"Extracted 4 lab results (2 abnormal, 2 normal)", "Date range: 2024-10-06 to 2025-09-15", "Glucosa"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected summary to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestChartFileName(t *testing.T) {
	t.Parallel()

	used := map[string]int{}

	cases := []struct {
		in   string
		want string
	}{
		{"Índice de masa corporal (IMC)", "Índice_de_masa_corporal_IMC.html"},
		{"TG/HDL", "TG_HDL.html"},
		{"TG HDL", "TG_HDL_2.html"},
		{"***", "biomarker.html"},
	}

	for _, tc := range cases {
		if got := chartFileName(tc.in, used); got != tc.want {
			t.Fatalf("chartFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestImportSource(t *testing.T) {
	t.Parallel()

	if _, _, err := importSource("", ""); !errors.Is(err, errInputRequired) {
		t.Fatalf("expected errInputRequired, got %v", err)
	}

	if _, _, err := importSource("a.pdf", "b.csv"); !errors.Is(err, errInputConflict) {
		t.Fatalf("expected errInputConflict, got %v", err)
	}

	records, method, err := importSource(writeReport(t), "")
	if err != nil {
		t.Fatalf("importSource failed: %v", err)
	}

	if method != importer.MethodPDFText || len(records) != 4 {
		t.Fatalf("expected 4 records via %s, got %d via %s", importer.MethodPDFText, len(records), method)
	}

	csvDir := t.TempDir()
	if _, err := writeArtifacts(records, csvDir, extractOptions{}); err != nil {
		t.Fatalf("writeArtifacts failed: %v", err)
	}

	fromCSV, method, err := importSource("", filepath.Join(csvDir, CSVFileName))
	if err != nil {
		t.Fatalf("importSource from CSV failed: %v", err)
	}

	if method != importer.MethodCSVImport {
		t.Fatalf("expected %s, got %s", importer.MethodCSVImport, method)
	}

	if labs.Summarize(fromCSV).Abnormal != labs.Summarize(records).Abnormal {
		t.Fatal("expected CSV records to keep abnormal flags")
	}
}
