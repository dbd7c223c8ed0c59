package memory

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Summary is the structured digest stored with an interaction. It is
// persisted as a JSON text column.
type Summary struct {
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
	Entities    []string `json:"entities"`
}

func (s Summary) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Summary) Scan(value any) error {
	if value == nil {
		*s = Summary{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Summary", value)
	}

	return json.Unmarshal(bytes, s)
}

func (s Summary) IsZero() bool {
	return s.Summary == "" && len(s.KeyPoints) == 0 && len(s.ActionItems) == 0 && len(s.Entities) == 0
}

// Person is someone recorded across interactions. Without face
// recognition every interaction creates a fresh "Unknown" person; the
// resolve operation renames or merges them afterwards.
type Person struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `gorm:"index" json:"last_seen_at"`
	PhotoPath  string    `json:"-"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
}

func (p *Person) HasFace() bool {
	return p.PhotoPath != ""
}

// ActiveSession is a recording session that has started but not yet
// stopped. It lives in redis so an abandoned session expires on its
// own instead of lingering forever.
type ActiveSession struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
}

func (s *ActiveSession) RedisKey() string {
	return "interaction:session:" + s.ID
}

// UsageStats are the per-day counters kept in redis.
type UsageStats struct {
	Date         string `json:"date"`
	Sessions     int64  `json:"sessions"`
	Interactions int64  `json:"interactions"`
	AudioSaved   int64  `json:"audio_saved"`
}

func UsageRedisKey(date string) string {
	return "interaction:metrics:" + date
}

// Interaction is one finalized recording session.
type Interaction struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	PersonID        string    `gorm:"not null;index;size:36" json:"person_id"`
	StartedAt       time.Time `gorm:"index" json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	DurationSeconds float64   `json:"duration_seconds"`
	Transcript      string    `gorm:"type:text" json:"transcript"`
	TranscriptHash  string    `gorm:"size:64" json:"-"`
	Summary         Summary   `gorm:"type:text" json:"summary"`
	AudioPath       string    `json:"-"`
	AudioSaved      bool      `json:"audio_saved"`
}
