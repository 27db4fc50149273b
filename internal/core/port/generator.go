package port

import (
	"context"
)

type TextGenerator interface {
	GenerateFromPrompt(ctx context.Context, prompt string) (string, error)
}

type Transcriber interface {
	GenerateFromAudio(ctx context.Context, url string) (string, error)
}

// ImageGenerator returns the raw bytes of a generated image.
type ImageGenerator interface {
	GenerateFromPrompt(ctx context.Context, prompt string) ([]byte, error)
}

// SpeechSynthesizer renders text to an MP3 stored in a temp file and returns its path. The caller owns the file.
type SpeechSynthesizer interface {
	SynthesizeToFile(ctx context.Context, text string) (string, error)
}
