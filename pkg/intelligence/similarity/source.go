package similarity

import "time"

const (
	time1Hour = time.Hour
	time1Day  = 24 * time.Hour
	time1Week = 7 * 24 * time.Hour
)

// sourceBucket classifies a source label's reliability.
type sourceBucket int

const (
	bucketLow sourceBucket = iota
	bucketMedium
	bucketHigh
)

// sourceBuckets is the fixed label-to-reliability table. Labels not listed
// fall into the low bucket.
var sourceBuckets = map[string]sourceBucket{
	"government":    bucketHigh,
	"official":      bucketHigh,
	"verified_news": bucketHigh,

	"news":         bucketMedium,
	"organization": bucketMedium,
	"academic":     bucketMedium,

	"social_media": bucketLow,
	"unofficial":   bucketLow,
	"unknown":      bucketLow,
}

func classifySource(label string) sourceBucket {
	if bucket, ok := sourceBuckets[label]; ok {
		return bucket
	}
	return bucketLow
}

// SourceSimilarity scores two source labels by reliability bucket: same
// high bucket 0.8, same medium or low bucket 0.6, different buckets 0.4.
func SourceSimilarity(sourceA, sourceB string) float64 {
	bucketA := classifySource(sourceA)
	bucketB := classifySource(sourceB)
	if bucketA != bucketB {
		return 0.4
	}
	if bucketA == bucketHigh {
		return 0.8
	}
	return 0.6
}
