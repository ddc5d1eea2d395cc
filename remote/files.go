package remote

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"bookit/models"
)

// UploadFile posts a multipart file to /files/upload and returns its public URL.
func (c *Client) UploadFile(ctx context.Context, file models.Upload) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Filename))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("create upload part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return "", fmt.Errorf("write upload part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close upload body: %w", err)
	}

	var out UploadResponse
	if err := c.send(ctx, http.MethodPost, "/files/upload", &buf, mw.FormDataContentType(), &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", &DeserializationError{Path: "/files/upload", Err: fmt.Errorf("empty url")}
	}
	return out.URL, nil
}
