/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import (
	"fmt"
	"math"
)

// TrendDirection describes how a biomarker moves over time.
type TrendDirection string

// TrendDirection values.
const (
	TrendImproving TrendDirection = "improving"
	TrendWorsening TrendDirection = "worsening"
	TrendStable    TrendDirection = "stable"
	TrendVariable  TrendDirection = "variable"
)

const (
	stableChangePercent   = 5.0
	variableCVPercent     = 20.0
	trendWindow           = 3
	singleComparisonCount = 2

	largeChangePercent = 20.0
	lowerEdgePercent   = 20.0
	upperEdgePercent   = 80.0
)

// InsightKind identifies a remark generated for a trend.
type InsightKind string

// InsightKind values.
const (
	InsightDirection           InsightKind = "direction"
	InsightOutOfRange          InsightKind = "out_of_range"
	InsightLargeChange         InsightKind = "large_change"
	InsightLatestAbnormal      InsightKind = "latest_abnormal"
	InsightNearLowerLimit      InsightKind = "near_lower_limit"
	InsightNearUpperLimit      InsightKind = "near_upper_limit"
	InsightWithinRange         InsightKind = "within_range"
	InsightConsecutiveAbnormal InsightKind = "consecutive_abnormal"
)

// Insight is a short human-readable remark about a trend.
type Insight struct {
	Kind    InsightKind `json:"kind"`
	Message string      `json:"message"`
}

// Trend is the analysis of a biomarker's numeric history.
type Trend struct {
	Direction            TrendDirection `json:"direction"`
	Samples              int            `json:"samples"`
	LastValue            *float64       `json:"last_value"`
	AverageValue         *float64       `json:"average_value"`
	PercentageOutOfRange float64        `json:"percentage_out_of_range"`
	ChangeFromPrevious   *float64       `json:"change_from_previous"`
	ConsecutiveAbnormal  bool           `json:"consecutive_abnormal"`
	Insights             []Insight      `json:"insights"`
}

// AnalyzeTrend inspects the numeric entries of a timeline. Entries are
// expected in chronological order, as produced by BuildTimeline.
func AnalyzeTrend(entries []TimelineEntry) Trend {
	valid := make([]TimelineEntry, 0, len(entries))
	for _, e := range entries {
		if e.Value != nil {
			valid = append(valid, e)
		}
	}

	trend := Trend{Direction: TrendStable, Samples: len(valid)}
	if len(valid) == 0 {
		return trend
	}

	values := make([]float64, len(valid))
	abnormal := 0

	for i, e := range valid {
		values[i] = *e.Value
		if e.Abnormal {
			abnormal++
		}
	}

	last := values[len(values)-1]
	avg := mean(values)
	trend.LastValue = &last
	trend.AverageValue = &avg
	trend.PercentageOutOfRange = float64(abnormal) / float64(len(valid)) * 100

	if len(values) > 1 {
		prev := values[len(values)-2]
		if prev != 0 {
			change := (last - prev) / prev * 100
			trend.ChangeFromPrevious = &change
		}
	}

	trend.Direction = determineTrend(values, valid[len(valid)-1])

	if len(valid) >= trendWindow {
		trend.ConsecutiveAbnormal = true
		for _, e := range valid[len(valid)-trendWindow:] {
			if !e.Abnormal {
				trend.ConsecutiveAbnormal = false
				break
			}
		}
	}

	trend.Insights = trendInsights(trend, valid[len(valid)-1])

	return trend
}

var directionMessages = map[TrendDirection]string{
	TrendImproving: "Values are trending toward the reference range",
	TrendWorsening: "Values are trending away from the reference range",
	TrendVariable:  "Values vary widely",
	TrendStable:    "Values are stable",
}

func trendInsights(trend Trend, latest TimelineEntry) []Insight {
	insights := []Insight{{Kind: InsightDirection, Message: directionMessages[trend.Direction]}}

	if trend.PercentageOutOfRange > 0 {
		insights = append(insights, Insight{
			Kind:    InsightOutOfRange,
			Message: fmt.Sprintf("%.0f%% of values are out of range", trend.PercentageOutOfRange),
		})
	}

	if c := trend.ChangeFromPrevious; c != nil && math.Abs(*c) > largeChangePercent {
		direction := "rose"
		if *c < 0 {
			direction = "fell"
		}

		insights = append(insights, Insight{
			Kind:    InsightLargeChange,
			Message: fmt.Sprintf("Latest value %s %.1f%% from the previous one", direction, math.Abs(*c)),
		})
	}

	switch {
	case latest.Abnormal:
		insights = append(insights, Insight{Kind: InsightLatestAbnormal, Message: "Latest result is out of range"})
	case latest.ReferenceMin != nil && latest.ReferenceMax != nil && *latest.ReferenceMax > *latest.ReferenceMin:
		position := (*latest.Value - *latest.ReferenceMin) / (*latest.ReferenceMax - *latest.ReferenceMin) * 100

		switch {
		case position < lowerEdgePercent:
			insights = append(insights, Insight{Kind: InsightNearLowerLimit, Message: "Latest value is near the lower limit"})
		case position > upperEdgePercent:
			insights = append(insights, Insight{Kind: InsightNearUpperLimit, Message: "Latest value is near the upper limit"})
		default:
			insights = append(insights, Insight{Kind: InsightWithinRange, Message: "Latest value is well within range"})
		}
	}

	if trend.ConsecutiveAbnormal {
		insights = append(insights, Insight{Kind: InsightConsecutiveAbnormal, Message: "Last 3 results are out of range"})
	}

	return insights
}

func determineTrend(values []float64, latest TimelineEntry) TrendDirection {
	if len(values) < singleComparisonCount {
		return TrendStable
	}

	if len(values) <= trendWindow {
		if len(values) != singleComparisonCount {
			return TrendStable
		}

		if percentChange(values[0], values[1]) < stableChangePercent {
			return TrendStable
		}

		if mid, ok := midRange(latest); ok {
			return closerTo(mid, values[0], values[1])
		}

		return TrendStable
	}

	recent := values[len(values)-trendWindow:]
	olderStart := len(values) - 2*trendWindow
	if olderStart < 0 {
		olderStart = 0
	}

	older := values[olderStart : len(values)-trendWindow]

	if coefficientOfVariation(values) > variableCVPercent {
		return TrendVariable
	}

	recentAvg := mean(recent)
	olderAvg := mean(older)

	if percentChange(olderAvg, recentAvg) < stableChangePercent {
		return TrendStable
	}

	if mid, ok := midRange(latest); ok {
		return closerTo(mid, olderAvg, recentAvg)
	}

	if recentAvg > olderAvg {
		return TrendImproving
	}

	return TrendWorsening
}

func closerTo(mid, before, after float64) TrendDirection {
	if math.Abs(after-mid) < math.Abs(before-mid) {
		return TrendImproving
	}

	return TrendWorsening
}

func midRange(e TimelineEntry) (float64, bool) {
	if e.ReferenceMin == nil || e.ReferenceMax == nil {
		return 0, false
	}

	return (*e.ReferenceMin + *e.ReferenceMax) / 2, true
}

// percentChange is the absolute change from base in percent. A zero base
// with a non-zero target counts as an unbounded change.
func percentChange(base, target float64) float64 {
	if base == 0 {
		if target == 0 {
			return 0
		}
		return math.Inf(1)
	}

	return math.Abs((target - base) / base * 100)
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}

	variance := 0.0
	for _, v := range values {
		variance += (v - m) * (v - m)
	}

	variance /= float64(len(values))

	return math.Sqrt(variance) / math.Abs(m) * 100
}
