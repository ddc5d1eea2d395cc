package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"bookit/models"
)

// FirebaseStorageService uploads to a Firebase Storage bucket with public read access.
type FirebaseStorageService struct {
	client     *gcs.Client
	bucketName string
	folder     string
}

func NewFirebaseStorageService(ctx context.Context, credentialsFile, bucketName, folder string) (*FirebaseStorageService, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("firebase storage bucket not set in configuration")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &FirebaseStorageService{client: client, bucketName: bucketName, folder: folder}, nil
}

func (s *FirebaseStorageService) UploadFile(ctx context.Context, file models.Upload) (string, error) {
	if len(file.Data) == 0 {
		return "", fmt.Errorf("FirebaseStorageService: empty file %q", file.Filename)
	}
	objectPath := objectName(s.folder, file.Filename)
	w := s.client.Bucket(s.bucketName).Object(objectPath).NewWriter(ctx)
	w.ACL = []gcs.ACLRule{{Entity: gcs.AllUsers, Role: gcs.RoleReader}}
	w.ContentType = file.ContentType
	if w.ContentType == "" {
		w.ContentType = mime.TypeByExtension(filepath.Ext(file.Filename))
	}

	if _, err := io.Copy(w, bytes.NewReader(file.Data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return publicURL(s.bucketName, objectPath), nil
}

func (s *FirebaseStorageService) Close() error {
	return s.client.Close()
}

func publicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", bucket, url.PathEscape(objectPath))
}
