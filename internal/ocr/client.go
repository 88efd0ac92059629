// Package ocr wraps the external image-to-text engine. The extraction core
// never interprets image bytes; this package is the only place that talks to
// the engine, and its failures are reported as distinct, user-actionable
// conditions rather than one generic error.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/PavanShelat/ExpenseFlow/internal/config"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrEmptyFile         = errors.New("uploaded file is empty")
	ErrImageTooLarge     = errors.New("image exceeds the size limit")
	ErrEngineFailure     = errors.New("ocr engine failed to extract text")
	ErrEngineUnavailable = errors.New("ocr engine is unavailable")
)

var supportedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

// EngineInterface is the external "image in, raw text out" capability
// contract. Timeout and retry policy belong to the caller, not to the
// extraction pipeline behind it.
type EngineInterface interface {
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
}

type httpEngine struct {
	config *config.OCRConfig
	client *http.Client
}

// NewHTTPEngine creates an EngineInterface backed by an HTTP OCR service
func NewHTTPEngine(cfg *config.OCRConfig) EngineInterface {
	return &httpEngine{
		config: cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// ExtractText uploads the image and returns the engine's raw text. Input
// problems (empty file, unsupported format, oversized image) are rejected
// locally before any network call.
func (e *httpEngine) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", ErrEmptyFile
	}
	if !supportedMIMETypes[mimeType] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
	if e.config.MaxImageBytes > 0 && int64(len(image)) > e.config.MaxImageBytes {
		return "", ErrImageTooLarge
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "receipt")
	if err != nil {
		return "", fmt.Errorf("building ocr request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("building ocr request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("building ocr request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.EndpointURL, body)
	if err != nil {
		return "", fmt.Errorf("building ocr request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response after %s: %v", ErrEngineFailure, time.Since(start), err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return string(text), nil
	case resp.StatusCode == http.StatusUnsupportedMediaType:
		return "", ErrUnsupportedFormat
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: engine returned %d", ErrEngineUnavailable, resp.StatusCode)
	default:
		return "", fmt.Errorf("%w: engine returned %d", ErrEngineFailure, resp.StatusCode)
	}
}
