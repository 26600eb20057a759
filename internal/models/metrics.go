package models

import "time"

// SystemMetrics is the JSON view of the service's instrumentation served to admins.
type SystemMetrics struct {
	HTTP        HTTPMetrics        `json:"http"`
	Cache       CacheMetrics       `json:"cache"`
	Database    DatabaseMetrics    `json:"database"`
	Eligibility EligibilityMetrics `json:"eligibility"`
	Goroutines  int                `json:"goroutines"`
	GeneratedAt time.Time          `json:"generated_at"`
}

type HTTPMetrics struct {
	Requests          uint64  `json:"requests"`
	AverageDurationMs float64 `json:"average_duration_ms"`
}

type CacheMetrics struct {
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
}

type DatabaseMetrics struct {
	Queries           uint64  `json:"queries"`
	AverageDurationMs float64 `json:"average_duration_ms"`
}

// EligibilityMetrics aggregates outcomes over every check since start-up.
type EligibilityMetrics struct {
	Checks   uint64             `json:"checks"`
	Outcomes EligibilitySummary `json:"outcomes"`
}
