package perception

import "time"

type Config struct {
	BaseURL string
	Timeout time.Duration

	// Optional client-credentials auth for deployments that front the
	// perception service with an OAuth2 proxy. Empty TokenURL disables it.
	TokenURL     string
	ClientID     string
	ClientSecret string
}

// BBox is a normalized bounding box with coordinates in [0,1].
type BBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Detection is one detected object. Zone and distance fields are
// optional spatial hints the service may attach; they are carried
// through for display untouched.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	BBox       BBox    `json:"bbox"`
	TrackID    *int    `json:"track_id,omitempty"`

	Zone           string   `json:"zone,omitempty"`
	DistanceBucket string   `json:"distance_bucket,omitempty"`
	DistanceEstM   *float64 `json:"distance_est_m,omitempty"`
	DistanceScore  *float64 `json:"distance_score,omitempty"`
}

type DetectResult struct {
	Detections []Detection
	TimingMs   float64
}

type NarrateResult struct {
	// Narrative is empty when the service decided there is nothing
	// worth speaking for this frame.
	Narrative  string
	Detections []Detection
	TimingMs   float64
}

type DescribeDetailedResult struct {
	Description string
	OCRText     string
	Detections  []Detection
	TimingMs    float64
}
