// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package labs

import (
	"math"
	"testing"
)

func numericEntries(values []float64, lo, hi *float64, abnormal ...int) []TimelineEntry {
	flagged := make(map[int]bool)
	for _, i := range abnormal {
		flagged[i] = true
	}

	entries := make([]TimelineEntry, len(values))
	for i := range values {
		v := values[i]
		entries[i] = TimelineEntry{
			Value:        &v,
			Abnormal:     flagged[i],
			ReferenceMin: lo,
			ReferenceMax: hi,
		}
	}

	return entries
}

func ptr(v float64) *float64 { return &v }

func TestAnalyzeTrendTwoValuesTowardMidRange(t *testing.T) {
	t.Parallel()

	trend := AnalyzeTrend(numericEntries([]float64{100, 90}, ptr(70), ptr(99), 0))
	if trend.Direction != TrendImproving {
		t.Fatalf("expected improving, got %q", trend.Direction)
	}

	if trend.Samples != 2 {
		t.Fatalf("expected 2 samples, got %d", trend.Samples)
	}

	if trend.PercentageOutOfRange != 50 {
		t.Fatalf("expected 50%% out of range, got %v", trend.PercentageOutOfRange)
	}

	if trend.ChangeFromPrevious == nil || math.Abs(*trend.ChangeFromPrevious+10) > 1e-9 {
		t.Fatalf("expected -10%% change, got %v", trend.ChangeFromPrevious)
	}

	if trend.LastValue == nil || *trend.LastValue != 90 {
		t.Fatalf("expected last value 90, got %v", trend.LastValue)
	}

	if trend.AverageValue == nil || *trend.AverageValue != 95 {
		t.Fatalf("expected average 95, got %v", trend.AverageValue)
	}
}

func TestAnalyzeTrendTwoValuesAwayFromMidRange(t *testing.T) {
	t.Parallel()

	trend := AnalyzeTrend(numericEntries([]float64{90, 100}, ptr(70), ptr(99)))
	if trend.Direction != TrendWorsening {
		t.Fatalf("expected worsening, got %q", trend.Direction)
	}
}

func TestAnalyzeTrendSmallChangeIsStable(t *testing.T) {
	t.Parallel()

	trend := AnalyzeTrend(numericEntries([]float64{100, 102}, ptr(70), ptr(99)))
	if trend.Direction != TrendStable {
		t.Fatalf("expected stable, got %q", trend.Direction)
	}
}

func TestAnalyzeTrendThreeValuesIsStable(t *testing.T) {
	t.Parallel()

	trend := AnalyzeTrend(numericEntries([]float64{50, 80, 120}, nil, nil))
	if trend.Direction != TrendStable {
		t.Fatalf("expected stable, got %q", trend.Direction)
	}
}

func TestAnalyzeTrendWindowsWithoutRange(t *testing.T) {
	t.Parallel()

	trend := AnalyzeTrend(numericEntries([]float64{10, 10, 10, 12, 12, 12}, nil, nil))
	if trend.Direction != TrendImproving {
		t.Fatalf("expected improving, got %q", trend.Direction)
	}

	trend = AnalyzeTrend(numericEntries([]float64{12, 12, 12, 10, 10, 10}, nil, nil))
	if trend.Direction != TrendWorsening {
		t.Fatalf("expected worsening, got %q", trend.Direction)
	}
}

func TestAnalyzeTrendWindowsWithRange(t *testing.T) {
	t.Parallel()

	// Rising away from a mid-range of 8 is worse even though values grow.
	trend := AnalyzeTrend(numericEntries([]float64{10, 10, 10, 12, 12, 12}, ptr(6), ptr(10)))
	if trend.Direction != TrendWorsening {
		t.Fatalf("expected worsening, got %q", trend.Direction)
	}
}

func TestAnalyzeTrendHighVariation(t *testing.T) {
	t.Parallel()

	trend := AnalyzeTrend(numericEntries([]float64{10, 30, 10, 30}, nil, nil))
	if trend.Direction != TrendVariable {
		t.Fatalf("expected variable, got %q", trend.Direction)
	}
}

func TestAnalyzeTrendIgnoresNonNumericEntries(t *testing.T) {
	t.Parallel()

	entries := []TimelineEntry{{Result: "Negative"}, {Result: "Positive", Abnormal: true}}

	trend := AnalyzeTrend(entries)
	if trend.Direction != TrendStable || trend.Samples != 0 {
		t.Fatalf("expected stable with no samples, got %+v", trend)
	}

	if trend.LastValue != nil || trend.AverageValue != nil || trend.ChangeFromPrevious != nil {
		t.Fatal("expected no numeric fields")
	}
}

func TestAnalyzeTrendZeroPreviousValue(t *testing.T) {
	t.Parallel()

	trend := AnalyzeTrend(numericEntries([]float64{0, 5}, nil, nil))
	if trend.ChangeFromPrevious != nil {
		t.Fatalf("expected no change percentage from zero, got %v", *trend.ChangeFromPrevious)
	}

	if trend.Direction != TrendStable {
		t.Fatalf("expected stable without a reference range, got %q", trend.Direction)
	}
}

func hasInsight(trend Trend, kind InsightKind) bool {
	for _, in := range trend.Insights {
		if in.Kind == kind {
			return true
		}
	}

	return false
}

func TestAnalyzeTrendConsecutiveAbnormal(t *testing.T) {
	t.Parallel()

	trend := AnalyzeTrend(numericEntries([]float64{80, 120, 125, 130}, ptr(70), ptr(99), 1, 2, 3))
	if !trend.ConsecutiveAbnormal {
		t.Fatal("expected last three results to be flagged consecutive")
	}

	for _, kind := range []InsightKind{InsightDirection, InsightOutOfRange, InsightLatestAbnormal, InsightConsecutiveAbnormal} {
		if !hasInsight(trend, kind) {
			t.Fatalf("expected %q insight, got %+v", kind, trend.Insights)
		}
	}

	if hasInsight(trend, InsightWithinRange) {
		t.Fatalf("expected no within-range insight for an abnormal latest result, got %+v", trend.Insights)
	}
}

func TestAnalyzeTrendRangePositionInsights(t *testing.T) {
	t.Parallel()

	cases := []struct {
		values []float64
		want   InsightKind
	}{
		{[]float64{85, 72}, InsightNearLowerLimit},
		{[]float64{85, 97}, InsightNearUpperLimit},
		{[]float64{85, 86}, InsightWithinRange},
	}

	for _, tc := range cases {
		trend := AnalyzeTrend(numericEntries(tc.values, ptr(70), ptr(100)))
		if !hasInsight(trend, tc.want) {
			t.Fatalf("values %v: expected %q insight, got %+v", tc.values, tc.want, trend.Insights)
		}

		if trend.ConsecutiveAbnormal || hasInsight(trend, InsightOutOfRange) {
			t.Fatalf("values %v: expected no out-of-range insights, got %+v", tc.values, trend.Insights)
		}
	}
}

func TestAnalyzeTrendLargeChangeInsight(t *testing.T) {
	t.Parallel()

	trend := AnalyzeTrend(numericEntries([]float64{100, 70}, nil, nil))
	if !hasInsight(trend, InsightLargeChange) {
		t.Fatalf("expected large change insight, got %+v", trend.Insights)
	}

	if hasInsight(trend, InsightWithinRange) {
		t.Fatalf("expected no range insight without bounds, got %+v", trend.Insights)
	}

	steady := AnalyzeTrend(numericEntries([]float64{100, 110}, nil, nil))
	if hasInsight(steady, InsightLargeChange) {
		t.Fatalf("expected no large change insight for 10%%, got %+v", steady.Insights)
	}
}
