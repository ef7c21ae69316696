package config

// Redis cache keys. Versioned so a schema change can invalidate by bumping
// the suffix instead of flushing the instance.
const (
	// CacheKeyStudentRoster holds the JSON-encoded projected student list
	// served by GET /api/students.
	CacheKeyStudentRoster = "students:roster:v1"
)
