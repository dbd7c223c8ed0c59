package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/eleven-am/aeye/internal/assist"
	"github.com/eleven-am/aeye/internal/audio"
	"github.com/eleven-am/aeye/internal/capture"
	"github.com/eleven-am/aeye/internal/interaction"
	"github.com/eleven-am/aeye/internal/perception"
	"github.com/eleven-am/aeye/internal/shared"
	"github.com/eleven-am/aeye/internal/speech"
	"go.uber.org/fx"
)

func ProvidePerceptionService(cfg *Config, logger *slog.Logger) perception.Service {
	return perception.NewClient(perception.Config{
		BaseURL:      cfg.PerceptionURL,
		Timeout:      cfg.PerceptionTimeout,
		TokenURL:     cfg.PerceptionTokenURL,
		ClientID:     cfg.PerceptionClientID,
		ClientSecret: cfg.PerceptionClientSecret,
	}, logger)
}

func ProvideFrameSource(cfg *Config, logger *slog.Logger) capture.Source {
	return capture.NewWebcamSource(capture.WebcamConfig{
		URL:     cfg.CameraURL,
		Timeout: cfg.CameraTimeout,
	}, logger)
}

func ProvideSynthesizer(cfg *Config, logger *slog.Logger) speech.TextToSpeech {
	return speech.NewHTTPSynthesizer(speech.TTSConfig{URL: cfg.TTSURL}, logger)
}

func ProvideRecognizer(cfg *Config, logger *slog.Logger) speech.SpeechToText {
	return speech.NewWSRecognizer(speech.STTConfig{
		URL:      cfg.STTWSURL,
		Language: cfg.STTLanguage,
	}, logger)
}

func ProvideSpeechOutput(tts speech.TextToSpeech, cfg *Config, logger *slog.Logger) *speech.Output {
	return speech.NewOutput(tts, cfg.TTSVoice, logger)
}

func ProvideSpeechInput(stt speech.SpeechToText, logger *slog.Logger) *speech.Input {
	return speech.NewInput(stt, shared.BackoffConfig{}, logger)
}

func ProvideRecorder(cfg *Config, logger *slog.Logger) audio.Recorder {
	return audio.NewDeviceRecorder(audio.RecorderConfig{Source: cfg.MicSource}, logger)
}

func ProvideAudioCapture(recorder audio.Recorder, logger *slog.Logger) *audio.Capture {
	return audio.NewCapture(recorder, logger)
}

func ProvideFeed(logger *slog.Logger) *assist.Feed {
	return assist.NewFeed(logger)
}

func ProvideDisplayState(feed *assist.Feed) *assist.DisplayState {
	return assist.NewDisplayState(feed)
}

func ProvideLoop(source capture.Source, svc perception.Service, output *speech.Output, display *assist.DisplayState, logger *slog.Logger) *assist.Loop {
	return assist.NewLoop(source, svc, output, display, assist.LoopConfig{}, logger)
}

func ProvidePoller(source capture.Source, svc perception.Service, display *assist.DisplayState, logger *slog.Logger) *assist.Poller {
	return assist.NewPoller(source, svc, display, 0, logger)
}

// ProvideInteractionBackend points the recorder at this process's own
// memory routes, keeping the recording side behind the same HTTP
// boundary an external memory service would sit behind.
func ProvideInteractionBackend(cfg *Config, logger *slog.Logger) interaction.Backend {
	return interaction.NewHTTPBackend("http://127.0.0.1"+cfg.ServerAddr, 30*time.Second, logger)
}

func ProvideInteractionSession(audioCapture *audio.Capture, input *speech.Input, backend interaction.Backend, logger *slog.Logger) *interaction.Session {
	return interaction.NewSession(audioCapture, input, backend, logger)
}

func StartPoller(lc fx.Lifecycle, poller *assist.Poller) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			poller.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			poller.Stop()
			return nil
		},
	})
}

// StopAssistOnShutdown halts narration and releases the microphone
// before the server goes away.
func StopAssistOnShutdown(lc fx.Lifecycle, loop *assist.Loop, session *interaction.Session) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			loop.Stop()
			session.Cancel()
			return nil
		},
	})
}

var AssistModule = fx.Options(
	fx.Provide(
		ProvidePerceptionService,
		ProvideFrameSource,
		ProvideSynthesizer,
		ProvideRecognizer,
		ProvideSpeechOutput,
		ProvideSpeechInput,
		ProvideRecorder,
		ProvideAudioCapture,
		ProvideFeed,
		ProvideDisplayState,
		ProvideLoop,
		ProvidePoller,
		ProvideInteractionBackend,
		ProvideInteractionSession,
	),
	fx.Invoke(StartPoller),
	fx.Invoke(StopAssistOnShutdown),
)
