package utils

import (
	"context"

	"bookit/config"
	"bookit/services/storage"
)

// NewStorageService builds the avatar storage driver selected by STORAGE_DRIVER.
// The remote driver uploads through the booking service.
func NewStorageService(ctx context.Context, remote storage.Uploader) (storage.StorageService, error) {
	cfg := config.AppConfig
	return storage.New(ctx, storage.Options{
		Driver:                  cfg.StorageDriver,
		Remote:                  remote,
		CloudinaryCloudName:     cfg.CloudinaryCloudName,
		CloudinaryAPIKey:        cfg.CloudinaryAPIKey,
		CloudinaryAPISecret:     cfg.CloudinaryAPISecret,
		Folder:                  cfg.CloudinaryFolder,
		FirebaseCredentialsFile: cfg.FirebaseCredentialsFile,
		FirebaseBucket:          cfg.FirebaseBucket,
	})
}
