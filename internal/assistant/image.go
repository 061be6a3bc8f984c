package assistant

import (
	"context"
	"encoding/base64"
	"fmt"
	"slices"
	"strings"

	"google.golang.org/genai"
)

type AspectRatio string

type ImageSize string

var (
	ImageAspectRatios = []AspectRatio{"1:1", "3:4", "4:3", "9:16", "16:9"}
	ImageSizes        = []ImageSize{"1K", "2K"}
	VideoAspectRatios = []AspectRatio{"16:9", "9:16"}
)

// GenerateImage returns the generated picture as a data URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string, aspect AspectRatio, size ImageSize) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	if !slices.Contains(ImageAspectRatios, aspect) {
		return "", fmt.Errorf("%w: image aspect ratio %q", ErrInvalidOption, aspect)
	}

	if !slices.Contains(ImageSizes, size) {
		return "", fmt.Errorf("%w: image size %q", ErrInvalidOption, size)
	}

	c.log.Debug().Str("model", c.cfg.ImageModel).Str("aspect", string(aspect)).Str("size", string(size)).Msg("image request")

	resp, err := c.models.GenerateImages(ctx, c.cfg.ImageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    string(aspect),
		ImageSize:      string(size),
	})
	if err != nil {
		return "", upstream("generate image", err)
	}

	for _, gi := range resp.GeneratedImages {
		if gi == nil || gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
			continue
		}

		mime := gi.Image.MIMEType
		if mime == "" {
			mime = "image/png"
		}

		return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(gi.Image.ImageBytes), nil
	}

	return "", ErrNoImage
}
