// Package ocr implements the invoice intake path: text extraction through
// an external vision model, product-code candidate scanning, and the
// human-reviewed staging save. Extraction confidence is inherently low, so
// nothing on this path is ever committed without review.
package ocr

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const extractPrompt = "Transcribe all text visible in this document image. " +
	"Return the raw text line by line, preserving the original line order. " +
	"Do not summarize, translate, or add commentary."

// TextExtractor turns a document image into raw text. Implementations block
// until extraction completes or ctx is done; on timeout or cancellation no
// partial output is returned.
type TextExtractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (string, error)
}

// GeminiExtractor extracts text using the Gemini API.
type GeminiExtractor struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiExtractor creates an extractor bound to one model and timeout.
func NewGeminiExtractor(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiExtractor{client: client, model: model, timeout: timeout}, nil
}

// Extract sends the image to the model and returns the transcribed text.
// The call is bounded by the configured timeout; a timed-out or cancelled
// call returns an error with no output.
func (g *GeminiExtractor) Extract(ctx context.Context, image []byte, mimeType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(extractPrompt),
		genai.NewPartFromBytes(image, mimeType),
	}, genai.RoleUser)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{content}, nil)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("text extraction aborted: %w", ctxErr)
		}
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return resp.Text(), nil
}
