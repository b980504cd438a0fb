/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/labextract/labs"
)

const chartDateLayout = "Jan 2, 2006"

// RenderTrendChart renders an HTML line chart of a biomarker's numeric
// results. Reference bounds from the latest plotted entry are drawn as
// dashed lines.
func RenderTrendChart(w io.Writer, timeline labs.BiomarkerTimeline) error {
	xAxis := make([]string, 0, len(timeline.Entries))
	yData := make([]opts.LineData, 0, len(timeline.Entries))

	var (
		latest           labs.TimelineEntry
		dataMin, dataMax float64
	)

	for _, entry := range timeline.Entries {
		if entry.Value == nil {
			continue
		}

		v := *entry.Value
		if len(yData) == 0 || v < dataMin {
			dataMin = v
		}

		if len(yData) == 0 || v > dataMax {
			dataMax = v
		}

		xAxis = append(xAxis, chartLabel(entry.Date))
		yData = append(yData, opts.LineData{Value: v, Name: entry.Status})
		latest = entry
	}

	if len(yData) == 0 {
		return fmt.Errorf("%w: %s", ErrNoNumericData, timeline.Biomarker)
	}

	var unitLabel string
	if latest.Units != nil {
		unitLabel = *latest.Units
	}

	yAxisMin, yAxisMax := axisBounds(latest, dataMin, dataMax)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: timeline.Biomarker,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    timeline.Biomarker,
			Subtitle: string(latest.Category),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: unitLabel,
			Min:  yAxisMin,
			Max:  yAxisMax,
		}),
	)

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{
			ShowSymbol: opts.Bool(true),
		}),
		charts.WithMarkPointNameTypeItemOpts(
			opts.MarkPointNameTypeItem{Name: "Max", Type: "max"},
			opts.MarkPointNameTypeItem{Name: "Min", Type: "min"},
		),
	}

	if markLines := referenceMarkLines(latest); len(markLines) > 0 {
		seriesOpts = append(seriesOpts, func(s *charts.SingleSeries) {
			s.MarkLines = &opts.MarkLines{
				Data: markLines,
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
		})
	}

	line.SetXAxis(xAxis).
		AddSeries(timeline.Biomarker, yData).
		SetSeriesOptions(seriesOpts...)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart for %s: %w", timeline.Biomarker, err)
	}

	return nil
}

func chartLabel(isoDate string) string {
	t, ok := labs.ParseDate(isoDate)
	if !ok {
		return isoDate
	}

	return t.Format(chartDateLayout)
}

func referenceMarkLines(entry labs.TimelineEntry) []interface{} {
	var items []interface{}

	if entry.ReferenceMin != nil {
		items = append(items, opts.MarkLineNameYAxisItem{Name: "Ref Min", YAxis: *entry.ReferenceMin})
	}

	if entry.ReferenceMax != nil {
		items = append(items, opts.MarkLineNameYAxisItem{Name: "Ref Max", YAxis: *entry.ReferenceMax})
	}

	return items
}

// axisBounds pads the y axis so the reference range stays visible. It
// returns nil bounds, letting echarts scale, when the range is incomplete.
func axisBounds(entry labs.TimelineEntry, dataMin, dataMax float64) (interface{}, interface{}) {
	if entry.ReferenceMin == nil || entry.ReferenceMax == nil {
		return nil, nil
	}

	padding := (*entry.ReferenceMax - *entry.ReferenceMin) * 0.1
	minVal := *entry.ReferenceMin - padding
	maxVal := *entry.ReferenceMax + padding

	if dataMin < minVal {
		minVal = dataMin - (dataMax-dataMin)*0.05
	}

	if dataMax > maxVal {
		maxVal = dataMax + (dataMax-dataMin)*0.05
	}

	return minVal, maxVal
}
