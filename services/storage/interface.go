package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"bookit/models"
)

// StorageService stores user uploads and returns their public URL.
type StorageService interface {
	UploadFile(ctx context.Context, file models.Upload) (string, error)
}

// Drivers selectable with STORAGE_DRIVER.
const (
	DriverRemote     = "remote"
	DriverCloudinary = "cloudinary"
	DriverFirebase   = "firebase"
)

// Options configures the driver returned by New.
type Options struct {
	Driver string
	// Remote is used by the "remote" driver.
	Remote Uploader

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	Folder              string

	FirebaseCredentialsFile string
	FirebaseBucket          string
}

// New builds the configured storage driver.
func New(ctx context.Context, opts Options) (StorageService, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverRemote:
		if opts.Remote == nil {
			return nil, fmt.Errorf("storage: remote driver needs an uploader")
		}
		return NewRemoteStorageService(opts.Remote), nil
	case DriverCloudinary:
		return NewCloudinaryStorageService(opts.CloudinaryCloudName, opts.CloudinaryAPIKey, opts.CloudinaryAPISecret, opts.Folder)
	case DriverFirebase:
		return NewFirebaseStorageService(ctx, opts.FirebaseCredentialsFile, opts.FirebaseBucket, opts.Folder)
	}
	return nil, fmt.Errorf("storage: unknown driver %q", opts.Driver)
}

// objectName returns a unique name under folder keeping the upload's extension.
func objectName(folder, filename string) string {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}
