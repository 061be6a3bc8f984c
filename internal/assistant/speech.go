package assistant

import (
	"bytes"
	"context"
	"encoding/binary"
	"strings"

	"google.golang.org/genai"
)

// Speech output is raw little-endian PCM in this layout.
const (
	SpeechSampleRate = 24000
	SpeechChannels   = 1
	speechBitDepth   = 16
)

// Speak synthesizes text and returns raw PCM audio.
func (c *Client) Speak(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPrompt
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.cfg.Voice},
			},
		},
	}

	c.log.Debug().Str("model", c.cfg.SpeechModel).Str("voice", c.cfg.Voice).Msg("speech request")

	resp, err := c.models.GenerateContent(ctx, c.cfg.SpeechModel, genai.Text(text), cfg)
	if err != nil {
		return nil, upstream("generate speech", err)
	}

	pcm := firstInlineData(resp)
	if len(pcm) == 0 {
		return nil, ErrNoAudio
	}

	return pcm, nil
}

// WAV wraps speech PCM in a RIFF/WAVE container.
func WAV(pcm []byte) []byte {
	const headerSize = 44

	blockAlign := SpeechChannels * speechBitDepth / 8
	byteRate := SpeechSampleRate * blockAlign

	var buf bytes.Buffer
	buf.Grow(headerSize + len(pcm))

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(headerSize-8+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(SpeechChannels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(SpeechSampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(speechBitDepth))

	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

func firstInlineData(resp *genai.GenerateContentResponse) []byte {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}

	return nil
}
