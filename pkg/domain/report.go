package domain

import "time"

// Report is the single JSON-serializable correlation report handed to
// exporters and monitors. The five analysis keys are stable: they are
// always present, degraded to empty-but-valid values for sparse input.
type Report struct {
	ReportID      string    `json:"report_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	ItemsAnalyzed int       `json:"data_sources_analyzed"`

	MLPatterns      MLPatterns       `json:"ml_patterns"`
	GraphAnalysis   GraphAnalysis    `json:"graph_analysis"`
	MultiModal      MultiModal       `json:"multi_modal_correlation"`
	CrossSource     CrossSource      `json:"cross_source_verification"`
	Confidence      ConfidenceReport `json:"confidence_synthesis"`
	Insights        []string         `json:"advanced_insights"`
	AnalysisVariant string           `json:"analysis_variant"` // "advanced" or "basic"
}

// MLPatterns carries the pattern-detection phase results.
type MLPatterns struct {
	Entities            map[string][]string `json:"entities"`
	Clusters            []Cluster           `json:"clusters"`
	Anomalies           []Anomaly           `json:"anomalies"`
	Trends              TrendSummary        `json:"trends"`
	TemporalProfile     TemporalProfile     `json:"temporal_patterns"`
	PatternSignificance float64             `json:"pattern_significance"`
}

// TrendSummary describes activity direction over the analysis period.
type TrendSummary struct {
	ActivityTrend  string         `json:"activity_trend"`
	TopicTrends    map[string]int `json:"topic_trends"`
	AnalysisPeriod AnalysisPeriod `json:"analysis_period"`
}

// AnalysisPeriod bounds the timestamps seen in the batch.
type AnalysisPeriod struct {
	Start     *time.Time `json:"start"`
	End       *time.Time `json:"end"`
	TotalDays int        `json:"total_days"`
}

// TemporalProfile summarizes inter-arrival behavior of timestamped items.
type TemporalProfile struct {
	AverageIntervalHours float64 `json:"average_interval_hours"`
	IntervalStdDev       float64 `json:"interval_std_dev"`
	TotalTimespanHours   float64 `json:"total_timespan_hours"`
	EventsPerDay         float64 `json:"events_per_day"`
}

// GraphAnalysis is the relationship-graph phase output.
type GraphAnalysis struct {
	EntityCount       int            `json:"entity_count"`
	RelationshipCount int            `json:"relationship_count"`
	Metrics           GraphMetrics   `json:"graph_metrics"`
	CentralEntities   []CentralEntity `json:"central_entities"`
	Communities       []Community    `json:"detected_communities"`
	Density           float64        `json:"graph_density"`
}

// GraphMetrics are whole-graph statistics.
type GraphMetrics struct {
	NodeCount             int     `json:"node_count"`
	EdgeCount             int     `json:"edge_count"`
	AverageDegree         float64 `json:"average_degree"`
	Diameter              int     `json:"graph_diameter"`
	ClusteringCoefficient float64 `json:"clustering_coefficient"`
}

// CentralEntity is one weighted-degree centrality ranking entry.
type CentralEntity struct {
	Entity Entity  `json:"entity"`
	Score  float64 `json:"centrality_score"`
}

// Community is a connected component of the relationship graph.
type Community struct {
	Members         []Entity `json:"nodes"`
	Size            int      `json:"size"`
	InternalDensity float64  `json:"internal_density"`
}

// MultiModal is the pairwise correlation phase output.
type MultiModal struct {
	SignificantCorrelations []Correlation `json:"significant_correlations"`
	AverageCorrelation      float64       `json:"average_correlation"`
	NetworkSize             int           `json:"correlation_network_size"`
}

// Correlation is one significant item pair with its modality breakdown.
type Correlation struct {
	ItemA     string             `json:"item1"`
	ItemB     string             `json:"item2"`
	Score     float64            `json:"correlation_score"`
	Breakdown map[string]float64 `json:"modality_breakdown"`
}

// CrossSource is the verification phase output.
type CrossSource struct {
	VerifiedClusters  []VerifiedCluster `json:"verified_clusters"`
	TotalVerified     int               `json:"total_verified_clusters"`
	AverageConfidence float64           `json:"average_verification_confidence"`
}

// VerifiedCluster groups items that share a content signature and scores
// how independently sourced they are.
type VerifiedCluster struct {
	Signature       string   `json:"content_signature"`
	SourceCount     int      `json:"source_count"`
	SourceDiversity int      `json:"source_diversity"`
	Confidence      float64  `json:"verification_confidence"`
	Sources         []string `json:"sources"`
}
