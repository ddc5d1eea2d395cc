package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"bookit/models"
)

// CloudinaryStorageService uploads straight to Cloudinary.
type CloudinaryStorageService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorageService(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStorageService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStorageService) UploadFile(ctx context.Context, file models.Upload) (string, error) {
	if len(file.Data) == 0 {
		return "", fmt.Errorf("CloudinaryStorageService: empty file %q", file.Filename)
	}
	name := objectName("", file.Filename)
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(file.Data), uploader.UploadParams{
		Folder:   s.folder,
		PublicID: strings.TrimSuffix(name, fileExt(name)),
	})
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorageService: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryStorageService: upload rejected: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryStorageService: no URL returned")
	}
	return result.SecureURL, nil
}

func fileExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}
