package speech

import "context"

// Utterance is one text-to-speech request. Closing Cancel aborts
// playback mid-utterance.
type Utterance struct {
	Text   string
	Voice  string
	Cancel <-chan struct{}
}

type SynthCallbacks struct {
	OnDone  func()
	OnError func(error)
}

// TextToSpeech is the speech synthesis capability seam.
type TextToSpeech interface {
	Synthesize(ctx context.Context, utt Utterance, cb SynthCallbacks) error
	IsAvailable(ctx context.Context) bool
}

// TranscriptEvent is one recognizer fragment. Partial fragments are
// replaced by later events; final fragments are authoritative.
type TranscriptEvent struct {
	Text      string
	IsPartial bool
}

type RecognizerCallbacks struct {
	OnTranscript func(TranscriptEvent)
	// OnEnd fires exactly once per Start when the engine terminates,
	// whether cleanly or not.
	OnEnd func(err error)
}

// SpeechToText is the streaming recognition capability seam. The
// engine may self-terminate after a silence; supervision is the
// caller's concern.
type SpeechToText interface {
	Start(ctx context.Context, cb RecognizerCallbacks) error
	SendAudio(pcm []byte) error
	Stop() error
	IsAvailable(ctx context.Context) bool
}
