/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labextract/export"
	"github.com/humaidq/labextract/labs"
)

// Output file names written by the extract command.
const (
	CSVFileName         = "lab_results.csv"
	AbnormalCSVFileName = "lab_results_abnormal.csv"
	SummaryFileName     = "lab_results_summary.json"
	TimelineFileName    = "lab_results_timeline.json"
	ChartsDirName       = "charts"
	mostTestedCount     = 15
)

var CmdExtract = &cli.Command{
	Name:  "extract",
	Usage: "Extract lab results from a report and write CSV/JSON artifacts",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "report file (PDF or plain text)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "out-dir",
			Aliases: []string{"o"},
			Value:   ".",
			Usage:   "directory for the generated files",
		},
		&cli.BoolFlag{
			Name:  "raw-ranges",
			Usage: "write reference bounds as printed instead of as numbers",
		},
		&cli.BoolFlag{
			Name:  "charts",
			Usage: "also render an HTML trend chart per biomarker",
		},
	},
	Action: extract,
}

type extractOptions struct {
	RawRanges bool
	Charts    bool
}

// extractResult lists what writeArtifacts produced.
type extractResult struct {
	Records  []labs.Record
	Summary  labs.Summary
	Timeline labs.Timeline
	Files    []string
	Charts   int
}

func extract(ctx context.Context, cmd *cli.Command) error {
	outDir := cmd.String("out-dir")
	if outDir == "" {
		return errOutDirRequired
	}

	records, err := extractFile(cmd.String("input"))
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return errNoRecords
	}

	result, err := writeArtifacts(records, outDir, extractOptions{
		RawRanges: cmd.Bool("raw-ranges"),
		Charts:    cmd.Bool("charts"),
	})
	if err != nil {
		return err
	}

	printSummary(os.Stdout, result)

	return nil
}

func writeArtifacts(records []labs.Record, outDir string, options extractOptions) (*extractResult, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &extractResult{
		Records:  records,
		Summary:  labs.Summarize(records),
		Timeline: labs.BuildTimeline(records),
	}

	csvOptions := export.CSVOptions{RawRanges: options.RawRanges}

	outputs := []struct {
		name  string
		write func(w io.Writer) error
	}{
		{CSVFileName, func(w io.Writer) error { return export.WriteCSV(w, records, csvOptions) }},
		{AbnormalCSVFileName, func(w io.Writer) error { return export.WriteCSV(w, labs.Abnormal(records), csvOptions) }},
		{SummaryFileName, func(w io.Writer) error { return export.WriteJSON(w, result.Summary) }},
		{TimelineFileName, func(w io.Writer) error { return export.WriteJSON(w, result.Timeline) }},
	}

	for _, out := range outputs {
		path := filepath.Join(outDir, out.name)
		if err := writeFile(path, func(f *os.File) error { return out.write(f) }); err != nil {
			return nil, err
		}

		result.Files = append(result.Files, path)
		exportLogger.Debug("Wrote file", "path", path)
	}

	if options.Charts {
		n, err := writeCharts(result.Timeline, filepath.Join(outDir, ChartsDirName))
		if err != nil {
			return nil, err
		}

		result.Charts = n
	}

	exportLogger.Info("Export complete", "dir", outDir, "files", len(result.Files), "charts", result.Charts)

	return result, nil
}

// writeCharts renders one chart per biomarker with numeric results.
func writeCharts(timeline labs.Timeline, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create charts directory: %w", err)
	}

	written := 0
	used := make(map[string]int)

	for _, bt := range timeline {
		name := chartFileName(bt.Biomarker, used)
		path := filepath.Join(dir, name)

		err := writeFile(path, func(f *os.File) error { return export.RenderTrendChart(f, bt) })
		if errors.Is(err, export.ErrNoNumericData) {
			if rmErr := os.Remove(path); rmErr != nil {
				exportLogger.Warn("Failed to remove empty chart", "path", path, "error", rmErr)
			}

			continue
		}

		if err != nil {
			return written, err
		}

		written++
	}

	return written, nil
}

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// chartFileName turns a biomarker name into a unique file name.
func chartFileName(biomarker string, used map[string]int) string {
	base := strings.Trim(unsafeFileChars.ReplaceAllString(biomarker, "_"), "_.")
	if base == "" {
		base = "biomarker"
	}

	used[base]++
	if n := used[base]; n > 1 {
		base = fmt.Sprintf("%s_%d", base, n)
	}

	return base + ".html"
}

func printSummary(w io.Writer, result *extractResult) {
	s := result.Summary

	fmt.Fprintf(w, "Extracted %d lab results (%d abnormal, %d normal)\n", s.Total, s.Abnormal, s.Normal)

	if s.DateRange.Earliest != nil && s.DateRange.Latest != nil {
		fmt.Fprintf(w, "Date range: %s to %s\n", *s.DateRange.Earliest, *s.DateRange.Latest)
	}

	fmt.Fprintln(w, "\nBy category:")

	for _, category := range s.OrderedCategories() {
		c := s.Categories[category]
		fmt.Fprintf(w, "  %-24s %4d tests  %4d abnormal  %4d biomarkers\n", category, c.Total, c.Abnormal, c.UniqueBiomarkers)
	}

	fmt.Fprintln(w, "\nMost tested:")

	for _, b := range s.MostTested(mostTestedCount) {
		fmt.Fprintf(w, "  %-40s %3d (%d abnormal)\n", b.Biomarker, b.Count, b.Abnormal)
	}

	fmt.Fprintln(w, "\nFiles:")

	for _, path := range result.Files {
		fmt.Fprintf(w, "  %s\n", path)
	}

	if result.Charts > 0 {
		fmt.Fprintf(w, "  %d charts in %s/\n", result.Charts, ChartsDirName)
	}
}
