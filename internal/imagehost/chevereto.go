// Package imagehost uploads generated images to a Chevereto instance.
package imagehost

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

// Uploader stores an image under a title and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, title string, image []byte) (string, error)
}

type Chevereto struct {
	baseURL string
	apiKey  string
	albumID string
	http    *http.Client
}

func NewChevereto(baseURL, apiKey, albumID string) *Chevereto {
	return &Chevereto{
		baseURL: baseURL,
		apiKey:  apiKey,
		albumID: albumID,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload posts the image as a base64 form field and returns the hosted URL.
func (c *Chevereto) Upload(ctx context.Context, title string, image []byte) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	fields := map[string]string{
		"source":   base64.StdEncoding.EncodeToString(image),
		"title":    title,
		"album_id": c.albumID,
		"format":   "json",
	}
	for k, v := range fields {
		if err := form.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/1/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chevereto upload: status %d", resp.StatusCode)
	}

	var body struct {
		Image struct {
			URL string `json:"url"`
		} `json:"image"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Image.URL == "" {
		return "", fmt.Errorf("chevereto upload: empty image url")
	}
	return body.Image.URL, nil
}
