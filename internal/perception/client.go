package perception

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const actionSpeak = "SPEAK"

// Client talks HTTP+JSON to the remote perception service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = cc.Client(ctx)
		httpClient.Timeout = timeout
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger.With("component", "perception"),
	}
}

type detectRequest struct {
	ImageBase64 string  `json:"image_base64"`
	Timestamp   float64 `json:"timestamp"`
}

type detectResponse struct {
	Timestamp       float64     `json:"timestamp"`
	Detections      []Detection `json:"detections"`
	InferenceTimeMs float64     `json:"inference_time_ms"`
}

type pipelineResponse struct {
	Timestamp  float64     `json:"timestamp"`
	Detections []Detection `json:"detections"`
	Agent      struct {
		Action string `json:"action"`
		Text   string `json:"text"`
	} `json:"agent"`
	Timing struct {
		DetectionMs float64 `json:"detection_ms"`
		TotalMs     float64 `json:"total_ms"`
	} `json:"timing"`
}

type imageRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type ocrResponse struct {
	Text            string  `json:"text"`
	Confidence      float64 `json:"confidence"`
	InferenceTimeMs float64 `json:"inference_time_ms"`
}

type describeResponse struct {
	Description     string  `json:"description"`
	InferenceTimeMs float64 `json:"inference_time_ms"`
}

type describeDetailedResponse struct {
	Description     string      `json:"description"`
	OCRText         string      `json:"ocr_text"`
	Detections      []Detection `json:"detections"`
	InferenceTimeMs float64     `json:"inference_time_ms"`
}

func (c *Client) Detect(ctx context.Context, image string, timestamp time.Time) (*DetectResult, error) {
	if image == "" {
		return nil, fmt.Errorf("no image data provided")
	}

	var resp detectResponse
	req := detectRequest{ImageBase64: image, Timestamp: toSeconds(timestamp)}
	if err := c.postJSON(ctx, "/detect", req, &resp); err != nil {
		return nil, err
	}

	return &DetectResult{
		Detections: resp.Detections,
		TimingMs:   resp.InferenceTimeMs,
	}, nil
}

// LiveNarrate runs the combined detection + narration pipeline. The
// service decides whether the frame deserves speech; when it stays
// silent the returned narrative is empty.
func (c *Client) LiveNarrate(ctx context.Context, image string) (*NarrateResult, error) {
	if image == "" {
		return nil, fmt.Errorf("no image data provided")
	}

	var resp pipelineResponse
	req := detectRequest{ImageBase64: image, Timestamp: toSeconds(time.Now())}
	if err := c.postJSON(ctx, "/pipeline", req, &resp); err != nil {
		return nil, err
	}

	narrative := ""
	if resp.Agent.Action == actionSpeak {
		narrative = resp.Agent.Text
	}

	return &NarrateResult{
		Narrative:  narrative,
		Detections: resp.Detections,
		TimingMs:   resp.Timing.TotalMs,
	}, nil
}

func (c *Client) OCR(ctx context.Context, image string) (string, error) {
	if image == "" {
		return "", fmt.Errorf("no image data provided")
	}

	var resp ocrResponse
	if err := c.postJSON(ctx, "/ocr", imageRequest{ImageBase64: image}, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *Client) Describe(ctx context.Context, image string) (string, error) {
	if image == "" {
		return "", fmt.Errorf("no image data provided")
	}

	var resp describeResponse
	if err := c.postJSON(ctx, "/describe", imageRequest{ImageBase64: image}, &resp); err != nil {
		return "", err
	}
	return resp.Description, nil
}

func (c *Client) DescribeDetailed(ctx context.Context, image string) (*DescribeDetailedResult, error) {
	if image == "" {
		return nil, fmt.Errorf("no image data provided")
	}

	var resp describeDetailedResponse
	if err := c.postJSON(ctx, "/describe/detailed", imageRequest{ImageBase64: image}, &resp); err != nil {
		return nil, err
	}

	return &DescribeDetailedResult{
		Description: resp.Description,
		OCRText:     resp.OCRText,
		Detections:  resp.Detections,
		TimingMs:    resp.InferenceTimeMs,
	}, nil
}

func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("perception request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("perception returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func toSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000.0
}
