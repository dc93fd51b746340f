// Package api provides the HTTP/JSON client for the Handl backend.
// This file implements the uploads operation group.
package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
)

// UploadImage posts image bytes as a multipart form and returns the
// hosted URL. kind categorizes the upload server-side ("profile",
// "general", ...).
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte, kind string) (string, error) {
	if kind == "" {
		kind = "general"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("creating multipart field: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("writing image data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalizing multipart body: %w", err)
	}

	path := "/uploads/image?type=" + url.QueryEscape(kind)
	env, err := c.do(ctx, http.MethodPost, path, nil, requestOpts{
		rawBody:     &buf,
		contentType: mw.FormDataContentType(),
	})
	if err != nil {
		return "", err
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := decodeData(env, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
