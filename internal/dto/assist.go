package dto

import (
	"github.com/eleven-am/aeye/internal/perception"
	"github.com/eleven-am/aeye/internal/speech"
)

type AssistStatusResponse struct {
	Running   bool    `json:"running" example:"true"`
	State     string  `json:"state" example:"thinking" enums:"idle,capturing,thinking,speaking,done"`
	Muted     bool    `json:"muted" example:"false"`
	Speaking  bool    `json:"speaking" example:"false"`
	LatencyMs float64 `json:"latency_ms" example:"118.4"`
}

type OverlayResponse struct {
	Detections []perception.Detection `json:"detections"`
	LatencyMs  float64                `json:"latency_ms" example:"42.7"`
}

type SpeechLogResponse struct {
	Entries []speech.LogEntry `json:"entries"`
}

type DescribeResponse struct {
	Description string                 `json:"description" example:"A kitchen counter with a kettle on the left."`
	OCRText     string                 `json:"ocr_text,omitempty" example:"EXIT"`
	Detections  []perception.Detection `json:"detections,omitempty"`
	LatencyMs   float64                `json:"latency_ms" example:"840.2"`
}

type ReadResponse struct {
	Text string `json:"text" example:"Platform 4, departures 10:15"`
}
