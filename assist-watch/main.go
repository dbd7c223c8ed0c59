package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
)

type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type statePayload struct {
	State string `json:"state"`
}

type detection struct {
	Label          string  `json:"label"`
	Confidence     float64 `json:"confidence"`
	Zone           string  `json:"zone"`
	DistanceBucket string  `json:"distance_bucket"`
}

type overlayPayload struct {
	Detections []detection `json:"detections"`
	LatencyMs  float64     `json:"latency_ms"`
}

type speechPayload struct {
	Entry struct {
		ID        int64  `json:"id"`
		Text      string `json:"text"`
		Timestamp string `json:"timestamp"`
	} `json:"entry"`
}

func main() {
	feedURL := os.Getenv("FEED_URL")
	if feedURL == "" {
		feedURL = "ws://localhost:8080/ws/assist"
	}

	fmt.Printf("[WATCH] Connecting to %s\n", feedURL)

	conn, _, err := websocket.DefaultDialer.Dial(feedURL, nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer conn.Close()

	fmt.Println("[WATCH] Connected, waiting for events...")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		fmt.Println("[WATCH] Shutting down...")
		conn.Close()
		os.Exit(0)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			fmt.Printf("[WATCH] Read error: %v\n", err)
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			fmt.Printf("[WATCH] Unmarshal error: %v\n", err)
			continue
		}

		switch ev.Type {
		case "state":
			var p statePayload
			if err := json.Unmarshal(ev.Payload, &p); err != nil {
				fmt.Printf("[WATCH] Bad state payload: %v\n", err)
				continue
			}
			fmt.Printf("[WATCH] state: %s\n", p.State)

		case "overlay":
			var p overlayPayload
			if err := json.Unmarshal(ev.Payload, &p); err != nil {
				fmt.Printf("[WATCH] Bad overlay payload: %v\n", err)
				continue
			}
			fmt.Printf("[WATCH] overlay: %d detections, %.0fms\n", len(p.Detections), p.LatencyMs)
			for _, d := range p.Detections {
				fmt.Printf("[WATCH]   %s %.2f%s\n", d.Label, d.Confidence, describePlace(d))
			}

		case "speech":
			var p speechPayload
			if err := json.Unmarshal(ev.Payload, &p); err != nil {
				fmt.Printf("[WATCH] Bad speech payload: %v\n", err)
				continue
			}
			fmt.Printf("[WATCH] spoke: %q\n", p.Entry.Text)

		default:
			fmt.Printf("[WATCH] Ignoring event type: %s\n", ev.Type)
		}
	}
}

func describePlace(d detection) string {
	switch {
	case d.Zone != "" && d.DistanceBucket != "":
		return fmt.Sprintf(" (%s, %s)", d.Zone, d.DistanceBucket)
	case d.Zone != "":
		return fmt.Sprintf(" (%s)", d.Zone)
	case d.DistanceBucket != "":
		return fmt.Sprintf(" (%s)", d.DistanceBucket)
	}
	return ""
}
