package anomaly

import (
	"sort"
	"time"

	"github.com/nmachari/weaver/pkg/domain"
)

const slopeBand = 0.1

// Trend classifies the direction of a daily count series using the
// ordinary-least-squares slope over index-vs-count. Fewer than three points
// is insufficient data; a degenerate slope denominator reads as stable.
func Trend(counts []float64) string {
	if len(counts) < 3 {
		return domain.TrendInsufficientData
	}

	n := float64(len(counts))
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range counts {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return domain.TrendStable
	}
	slope := (n*sumXY - sumX*sumY) / denominator

	switch {
	case slope > slopeBand:
		return domain.TrendIncreasing
	case slope < -slopeBand:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

// DailyCounts buckets timestamped items per calendar day, returning counts
// in date order plus the period bounds. Untimestamped items are skipped.
func DailyCounts(items []domain.Item) ([]float64, domain.AnalysisPeriod) {
	buckets := make(map[time.Time]int)
	for _, item := range items {
		if !item.Timestamp.Valid() {
			continue
		}
		day := item.Timestamp.Time.Truncate(24 * time.Hour)
		buckets[day]++
	}
	if len(buckets) == 0 {
		return nil, domain.AnalysisPeriod{}
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	counts := make([]float64, len(days))
	for i, day := range days {
		counts[i] = float64(buckets[day])
	}
	start, end := days[0], days[len(days)-1]
	return counts, domain.AnalysisPeriod{Start: &start, End: &end, TotalDays: len(days)}
}

// TemporalProfile summarizes inter-arrival spacing of timestamped items.
func TemporalProfile(items []domain.Item) domain.TemporalProfile {
	var timestamps []time.Time
	for _, item := range items {
		if item.Timestamp.Valid() {
			timestamps = append(timestamps, item.Timestamp.Time)
		}
	}
	if len(timestamps) < 2 {
		return domain.TemporalProfile{}
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

	intervals := make([]float64, 0, len(timestamps)-1)
	for i := 1; i < len(timestamps); i++ {
		intervals = append(intervals, timestamps[i].Sub(timestamps[i-1]).Hours())
	}
	mean, stddev := meanStddev(intervals)

	span := timestamps[len(timestamps)-1].Sub(timestamps[0])
	days := int(span.Hours() / 24)
	if days < 1 {
		days = 1
	}
	return domain.TemporalProfile{
		AverageIntervalHours: mean,
		IntervalStdDev:       stddev,
		TotalTimespanHours:   span.Hours(),
		EventsPerDay:         float64(len(timestamps)) / float64(days),
	}
}
