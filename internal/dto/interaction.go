package dto

type InteractionStopRequest struct {
	// FaceImage is an optional base64 JPEG data URL captured at stop
	// time, stored as the person's photo.
	FaceImage string `json:"face_image,omitempty"`
	SaveAudio bool   `json:"save_audio" example:"false"`
}

type InteractionStatusResponse struct {
	Status          string  `json:"status" example:"recording" enums:"idle,recording,processing,completed,cancelled"`
	SessionID       string  `json:"session_id,omitempty" example:"9b2f6c1e-83a4-4f5d-9c0a-2d1e7b8f3a44"`
	Transcript      string  `json:"transcript" example:"Hello there friend"`
	DurationSeconds float64 `json:"duration_seconds" example:"4.0"`
	Listening       bool    `json:"listening" example:"true"`
}
