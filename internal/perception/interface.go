package perception

import (
	"context"
	"time"
)

// Service is the scene-analysis boundary. Images are base64 JPEG data
// URLs; all calls are stateless request/response.
type Service interface {
	Detect(ctx context.Context, image string, timestamp time.Time) (*DetectResult, error)
	LiveNarrate(ctx context.Context, image string) (*NarrateResult, error)
	OCR(ctx context.Context, image string) (string, error)
	Describe(ctx context.Context, image string) (string, error)
	DescribeDetailed(ctx context.Context, image string) (*DescribeDetailedResult, error)
	IsAvailable(ctx context.Context) bool
}
