// ABOUTME: Capability interfaces for voice input and spoken output
// ABOUTME: Keeps platform audio tooling behind narrow, fake-able seams

package speech

import (
	"context"
	"io"
)

// Recognizer captures audio and turns it into text. Start begins a capture;
// Stop ends it and returns the transcript for everything captured since
// Start.
type Recognizer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (string, error)
}

// Speaker renders text as audible speech
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
}

// Transcriber is the slice of the API client the recognizers need
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error)
}

// Synthesizer is the slice of the API client the speakers need
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}
