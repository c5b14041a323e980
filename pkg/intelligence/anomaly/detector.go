// Package anomaly finds statistical outliers in mention and activity
// counts and classifies activity trends. All detection is z-score based
// over in-batch counts; sparse batches degrade to empty results, never
// errors.
package anomaly

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nmachari/weaver/pkg/domain"
	"github.com/nmachari/weaver/pkg/intelligence/extraction"
)

// Config bounds detection sensitivity.
type Config struct {
	// ZThreshold is the absolute z-score above which a count is anomalous.
	ZThreshold float64 `yaml:"z_threshold" json:"z_threshold"`
	// MinItems is the smallest batch worth testing.
	MinItems int `yaml:"min_items" json:"min_items"`
}

// DefaultConfig returns the canonical detection parameters.
func DefaultConfig() Config {
	return Config{ZThreshold: 2.0, MinItems: 5}
}

// Validate rejects out-of-range parameters.
func (c Config) Validate() error {
	if c.ZThreshold < 0 {
		return domain.NewConfigError("anomaly", "z_threshold", "must be non-negative")
	}
	if c.MinItems < 1 {
		return domain.NewConfigError("anomaly", "min_items", "must be at least 1")
	}
	return nil
}

// Detector runs z-score outlier detection over a batch.
type Detector struct {
	gazetteer *extraction.Gazetteer
	config    Config
	logger    *zap.Logger
}

// NewDetector validates the config and returns a ready detector.
func NewDetector(gazetteer *extraction.Gazetteer, config Config, logger *zap.Logger) (*Detector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Detector{gazetteer: gazetteer, config: config, logger: logger}, nil
}

// TopicAnomalies flags topics whose mention count deviates from the batch
// mean by more than the threshold in population standard deviations. Every
// topic in the vocabulary participates, zero counts included. Batches
// smaller than MinItems return nothing.
func (d *Detector) TopicAnomalies(items []domain.Item) []domain.Anomaly {
	if len(items) < d.config.MinItems {
		return nil
	}

	counts := d.TopicCounts(items)
	topics := d.gazetteer.Terms(domain.CategoryTopic)
	values := make([]float64, len(topics))
	for i, topic := range topics {
		values[i] = float64(counts[topic])
	}

	mean, stddev := meanStddev(values)
	if stddev == 0 {
		return nil
	}

	var anomalies []domain.Anomaly
	for i, topic := range topics {
		z := (values[i] - mean) / stddev
		if math.Abs(z) <= d.config.ZThreshold {
			continue
		}
		anomalies = append(anomalies, domain.Anomaly{
			Kind:      domain.AnomalyTopic,
			Subject:   topic,
			Count:     counts[topic],
			ZScore:    z,
			Direction: direction(z),
			Description: fmt.Sprintf("topic %q mentioned %d times against a mean of %.1f (z=%.2f)",
				topic, counts[topic], mean, z),
		})
	}
	sortAnomalies(anomalies)
	return anomalies
}

// TopicCounts tallies mentions per vocabulary topic across the batch.
func (d *Detector) TopicCounts(items []domain.Item) map[string]int {
	counts := make(map[string]int)
	for _, topic := range d.gazetteer.Terms(domain.CategoryTopic) {
		counts[topic] = 0
	}
	for _, item := range items {
		text := item.Text()
		for _, topic := range d.gazetteer.Terms(domain.CategoryTopic) {
			if strings.Contains(text, topic) {
				counts[topic]++
			}
		}
	}
	return counts
}

// ActivityAnomalies applies the same z-score test to item counts bucketed
// by hour. Untimestamped items are ignored; fewer than three buckets is not
// enough signal.
func (d *Detector) ActivityAnomalies(items []domain.Item) []domain.Anomaly {
	if len(items) < d.config.MinItems {
		return nil
	}

	buckets := make(map[time.Time]int)
	for _, item := range items {
		if !item.Timestamp.Valid() {
			continue
		}
		hour := item.Timestamp.Time.Truncate(time.Hour)
		buckets[hour]++
	}
	if len(buckets) < 3 {
		return nil
	}

	hours := make([]time.Time, 0, len(buckets))
	for hour := range buckets {
		hours = append(hours, hour)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Before(hours[j]) })

	values := make([]float64, len(hours))
	for i, hour := range hours {
		values[i] = float64(buckets[hour])
	}
	mean, stddev := meanStddev(values)
	if stddev == 0 {
		return nil
	}

	var anomalies []domain.Anomaly
	for i, hour := range hours {
		z := (values[i] - mean) / stddev
		if math.Abs(z) <= d.config.ZThreshold {
			continue
		}
		anomalies = append(anomalies, domain.Anomaly{
			Kind:      domain.AnomalyActivity,
			Subject:   hour.Format(time.RFC3339),
			Count:     buckets[hour],
			ZScore:    z,
			Direction: direction(z),
			Description: fmt.Sprintf("activity of %d items in hour %s against a mean of %.1f (z=%.2f)",
				buckets[hour], hour.Format("2006-01-02 15:00"), mean, z),
		})
	}
	sortAnomalies(anomalies)
	return anomalies
}

func direction(z float64) string {
	if z > 0 {
		return "high"
	}
	return "low"
}

// meanStddev returns the mean and population standard deviation.
func meanStddev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func sortAnomalies(anomalies []domain.Anomaly) {
	sort.SliceStable(anomalies, func(i, j int) bool {
		zi, zj := math.Abs(anomalies[i].ZScore), math.Abs(anomalies[j].ZScore)
		if zi != zj {
			return zi > zj
		}
		return anomalies[i].Subject < anomalies[j].Subject
	})
}
