package assistant

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyPrompt      = errors.New("prompt is empty")
	ErrInvalidOption    = errors.New("invalid option")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrInvalidAPIKey    = errors.New("API key not found or invalid")
	ErrUpstream         = errors.New("gemini request failed")
	ErrNoAudio          = errors.New("no audio data received")
	ErrNoImage          = errors.New("no image was generated")
	ErrVideoFailed      = errors.New("video generation failed")
	ErrTimeout          = errors.New("timed out waiting for operation")
)

// upstream wraps an error returned by the Gemini API.
func upstream(action string, err error) error {
	return fmt.Errorf("%s: %w: %w", action, ErrUpstream, err)
}

// videoStartError wraps a failed video start. The video model is only
// reachable with a paid key, so "not found" there means the key is wrong.
func videoStartError(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "not found") {
		return fmt.Errorf("start video generation: %w: %w", ErrInvalidAPIKey, err)
	}

	return upstream("start video generation", err)
}
