package audio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type chunkCollector struct {
	mu     sync.Mutex
	chunks [][]byte
}

func newChunkCollector() *chunkCollector {
	return &chunkCollector{}
}

func (cc *chunkCollector) add(pcm []byte) {
	chunk := append([]byte(nil), pcm...)
	cc.mu.Lock()
	cc.chunks = append(cc.chunks, chunk)
	cc.mu.Unlock()
}

func (cc *chunkCollector) count() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return len(cc.chunks)
}

func (cc *chunkCollector) all() [][]byte {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return append([][]byte(nil), cc.chunks...)
}

func TestDeviceRecorder_SilenceChunks(t *testing.T) {
	rec := NewDeviceRecorder(RecorderConfig{
		SampleRate:    16000,
		ChunkDuration: 20 * time.Millisecond,
	}, nil)
	cc := newChunkCollector()

	if err := rec.Start(context.Background(), cc.add); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, time.Second, func() bool { return cc.count() >= 2 })
	if err := rec.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	chunks := cc.all()
	want := 16000 * 2 / 50
	if len(chunks[0]) != want {
		t.Errorf("expected %d bytes per chunk, got %d", want, len(chunks[0]))
	}
	for _, b := range chunks[0] {
		if b != 0 {
			t.Fatal("expected silence")
		}
	}
}

func TestDeviceRecorder_ReadsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mic.raw")
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i % 251)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	rec := NewDeviceRecorder(RecorderConfig{
		Source:        path,
		SampleRate:    8000,
		ChunkDuration: 20 * time.Millisecond,
	}, nil)
	cc := newChunkCollector()

	if err := rec.Start(context.Background(), cc.add); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, time.Second, func() bool { return cc.count() >= 1 })
	rec.Stop()

	chunkBytes := 8000 * 2 / 50
	first := cc.all()[0]
	if len(first) != chunkBytes {
		t.Fatalf("expected %d bytes, got %d", chunkBytes, len(first))
	}
	if !bytes.Equal(first, data[:chunkBytes]) {
		t.Error("first chunk does not match source stream")
	}
}

func TestDeviceRecorder_ResamplesSource(t *testing.T) {
	rec := NewDeviceRecorder(RecorderConfig{
		SourceRate:    8000,
		SampleRate:    16000,
		ChunkDuration: 20 * time.Millisecond,
	}, nil)
	cc := newChunkCollector()

	if err := rec.Start(context.Background(), cc.add); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, time.Second, func() bool { return cc.count() >= 1 })
	rec.Stop()

	// 20ms at the 16kHz delivery rate regardless of the source rate.
	want := 16000 * 2 / 50
	if got := len(cc.all()[0]); got != want {
		t.Errorf("expected %d bytes after resampling, got %d", want, got)
	}
}

func TestDeviceRecorder_StopFlushesPartialChunk(t *testing.T) {
	rec := NewDeviceRecorder(RecorderConfig{
		SampleRate:    16000,
		ChunkDuration: 500 * time.Millisecond,
	}, nil)
	cc := newChunkCollector()

	if err := rec.Start(context.Background(), cc.add); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := rec.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	chunks := cc.all()
	if len(chunks) != 1 {
		t.Fatalf("expected a single flushed chunk, got %d", len(chunks))
	}
	full := 16000 * 2 / 2
	if len(chunks[0]) == 0 || len(chunks[0]) >= full {
		t.Errorf("expected partial chunk, got %d bytes", len(chunks[0]))
	}
	if len(chunks[0])%2 != 0 {
		t.Error("chunk not aligned to sample boundary")
	}
}

func TestDeviceRecorder_DoubleStartFails(t *testing.T) {
	rec := NewDeviceRecorder(RecorderConfig{ChunkDuration: time.Hour}, nil)
	if err := rec.Start(context.Background(), func([]byte) {}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer rec.Stop()

	if err := rec.Start(context.Background(), func([]byte) {}); err == nil {
		t.Error("expected error starting an already started recorder")
	}
}

func TestDeviceRecorder_StopIdempotent(t *testing.T) {
	rec := NewDeviceRecorder(RecorderConfig{ChunkDuration: time.Hour}, nil)
	if err := rec.Stop(); err != nil {
		t.Errorf("Stop before Start should be a no-op, got %v", err)
	}

	if err := rec.Start(context.Background(), func([]byte) {}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := rec.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if err := rec.Stop(); err != nil {
		t.Errorf("second Stop should be a no-op, got %v", err)
	}
}

func TestDeviceRecorder_MissingSource(t *testing.T) {
	rec := NewDeviceRecorder(RecorderConfig{Source: "/nonexistent/mic.raw"}, nil)
	if err := rec.Start(context.Background(), func([]byte) {}); err == nil {
		t.Error("expected error for missing source")
	}
}
