package storage

import (
	"context"
	"fmt"

	"bookit/models"
)

// Uploader posts files to the booking service. *remote.Client satisfies it.
type Uploader interface {
	UploadFile(ctx context.Context, file models.Upload) (string, error)
}

// RemoteStorageService uploads through the booking service's /files/upload.
type RemoteStorageService struct {
	uploader Uploader
}

func NewRemoteStorageService(u Uploader) *RemoteStorageService {
	return &RemoteStorageService{uploader: u}
}

func (s *RemoteStorageService) UploadFile(ctx context.Context, file models.Upload) (string, error) {
	if len(file.Data) == 0 {
		return "", fmt.Errorf("RemoteStorageService: empty file %q", file.Filename)
	}
	url, err := s.uploader.UploadFile(ctx, file)
	if err != nil {
		return "", fmt.Errorf("RemoteStorageService: failed to upload file: %w", err)
	}
	return url, nil
}
