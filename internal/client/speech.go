// ABOUTME: Speech endpoints of the AgriAI backend
// ABOUTME: Multipart audio transcription and text-to-speech synthesis

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Transcribe posts an audio stream to POST /stt/transcribe/ and returns the
// English translation produced by the backend's Whisper pipeline.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to read audio: %w", err)
	}
	if language != "" {
		if err := mw.WriteField("language", language); err != nil {
			return "", fmt.Errorf("failed to build upload: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}

	// The deployed service binds language from the query string, not the
	// form; the field above is kept for implementations that read the form.
	endpoint := c.baseURL + basePath + "/stt/transcribe/"
	if language != "" {
		q := url.Values{}
		q.Set("language", language)
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Translation string `json:"translation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("invalid response from backend: %w", err)
	}
	return result.Translation, nil
}

// Synthesize fetches spoken audio for text from GET /tts/tts and returns the
// MPEG bytes.
func (c *Client) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	q := url.Values{}
	q.Set("text", text)
	if lang != "" {
		q.Set("lang", lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+basePath+"/tts/tts?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}
	return audio, nil
}
