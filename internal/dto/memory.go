package dto

// Summary is the structured digest stored with an interaction. Without
// a summarizer engine only the Summary line is populated.
type Summary struct {
	Summary     string   `json:"summary" example:"Talked about the weekend hike."`
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
	Entities    []string `json:"entities"`
}

type SessionStartResponse struct {
	SessionID string `json:"session_id" example:"9b2f6c1e-83a4-4f5d-9c0a-2d1e7b8f3a44"`
	StartedAt string `json:"started_at" example:"2026-02-11T09:30:00Z"`
}

type InteractionResultResponse struct {
	InteractionID   string   `json:"interaction_id" example:"f3a1d8c2-5e7b-4a90-b1c6-0d9e8f7a6b5c"`
	PersonID        string   `json:"person_id" example:"7c4e2b9a-1f8d-4e63-a5b0-3c2d1e0f9a87"`
	PersonName      string   `json:"person_name" example:"Unknown"`
	IsNewPerson     bool     `json:"is_new_person" example:"true"`
	Summary         *Summary `json:"summary,omitempty"`
	Transcript      string   `json:"transcript,omitempty" example:"Hello there friend"`
	DurationSeconds float64  `json:"duration_seconds,omitempty" example:"12.4"`
}

type PersonResponse struct {
	ID               string `json:"id" example:"7c4e2b9a-1f8d-4e63-a5b0-3c2d1e0f9a87"`
	Name             string `json:"name" example:"Unknown"`
	CreatedAt        string `json:"created_at,omitempty" example:"2026-02-11T09:30:00Z"`
	LastSeenAt       string `json:"last_seen_at,omitempty" example:"2026-02-12T17:05:00Z"`
	HasFace          bool   `json:"has_face" example:"false"`
	Notes            string `json:"notes,omitempty"`
	InteractionCount int64  `json:"interaction_count" example:"3"`
}

type PeopleResponse struct {
	People []PersonResponse `json:"people"`
}

type InteractionResponse struct {
	ID              string   `json:"id" example:"f3a1d8c2-5e7b-4a90-b1c6-0d9e8f7a6b5c"`
	PersonID        string   `json:"person_id" example:"7c4e2b9a-1f8d-4e63-a5b0-3c2d1e0f9a87"`
	PersonName      string   `json:"person_name,omitempty" example:"Unknown"`
	StartedAt       string   `json:"started_at,omitempty" example:"2026-02-11T09:30:00Z"`
	EndedAt         string   `json:"ended_at,omitempty" example:"2026-02-11T09:30:12Z"`
	DurationSeconds float64  `json:"duration_seconds,omitempty" example:"12.4"`
	Transcript      string   `json:"transcript,omitempty"`
	Summary         *Summary `json:"summary,omitempty"`
	AudioSaved      bool     `json:"audio_saved" example:"false"`
}

type PersonInteractionsResponse struct {
	Person       PersonResponse        `json:"person"`
	Interactions []InteractionResponse `json:"interactions"`
}

type RenamePersonRequest struct {
	Name string `json:"name" example:"Maya"`
}

type ResolvePersonRequest struct {
	UnknownPersonID   string `json:"unknown_person_id" example:"7c4e2b9a-1f8d-4e63-a5b0-3c2d1e0f9a87"`
	NewName           string `json:"new_name" example:"Maya"`
	MergeWithPersonID string `json:"merge_with_person_id,omitempty"`
}

type DeletePersonResponse struct {
	Status   string `json:"status" example:"deleted"`
	PersonID string `json:"person_id" example:"7c4e2b9a-1f8d-4e63-a5b0-3c2d1e0f9a87"`
}

type InteractionSearchResponse struct {
	Query   string                `json:"query" example:"hike"`
	Results []InteractionResponse `json:"results"`
}

type UsageStatsResponse struct {
	Date         string `json:"date" example:"2026-02-11"`
	Sessions     int64  `json:"sessions" example:"4"`
	Interactions int64  `json:"interactions" example:"3"`
	AudioSaved   int64  `json:"audio_saved" example:"1"`
}

type UsageResponse struct {
	Days  int                  `json:"days" example:"7"`
	Usage []UsageStatsResponse `json:"usage"`
}
