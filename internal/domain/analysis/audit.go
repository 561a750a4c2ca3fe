package analysis

import "time"

// ReportRecord is a generated report stored for auditing and retrieval.
type ReportRecord struct {
	ID        string    `json:"id"`
	BuildID   string    `json:"build_id"`
	Name      Name      `json:"name"`
	Summary   string    `json:"summary"`
	Error     string    `json:"error,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BuildFailure is a producer error that aborted a cache build.
type BuildFailure struct {
	ID        int64     `json:"id"`
	BuildID   string    `json:"build_id"`
	Name      Name      `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
