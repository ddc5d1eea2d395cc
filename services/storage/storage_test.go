package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/models"
)

type fakeUploader struct {
	got models.Upload
	err error
}

func (f *fakeUploader) UploadFile(_ context.Context, file models.Upload) (string, error) {
	f.got = file
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn/" + file.Filename, nil
}

func TestNewSelectsDriver(t *testing.T) {
	u := &fakeUploader{}

	svc, err := New(context.Background(), Options{Driver: "", Remote: u})
	require.NoError(t, err)
	assert.IsType(t, &RemoteStorageService{}, svc)

	svc, err = New(context.Background(), Options{Driver: "Cloudinary", CloudinaryCloudName: "demo", CloudinaryAPIKey: "key", CloudinaryAPISecret: "secret"})
	require.NoError(t, err)
	assert.IsType(t, &CloudinaryStorageService{}, svc)

	_, err = New(context.Background(), Options{Driver: DriverCloudinary})
	assert.Error(t, err)

	_, err = New(context.Background(), Options{Driver: DriverFirebase})
	assert.Error(t, err)

	_, err = New(context.Background(), Options{Driver: DriverRemote})
	assert.Error(t, err)

	_, err = New(context.Background(), Options{Driver: "s3"})
	assert.Error(t, err)
}

func TestRemoteStorageService(t *testing.T) {
	u := &fakeUploader{}
	svc := NewRemoteStorageService(u)

	url, err := svc.UploadFile(context.Background(), models.Upload{Filename: "me.png", Data: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/me.png", url)

	_, err = svc.UploadFile(context.Background(), models.Upload{Filename: "empty.png"})
	assert.Error(t, err)

	u.err = errors.New("413")
	_, err = svc.UploadFile(context.Background(), models.Upload{Filename: "big.png", Data: []byte{1}})
	assert.ErrorIs(t, err, u.err)
}

func TestObjectName(t *testing.T) {
	name := objectName("/bookit/avatars/", "Me.PNG")
	assert.True(t, strings.HasPrefix(name, "bookit/avatars/"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, name, objectName("bookit/avatars", "Me.PNG"))

	assert.NotContains(t, objectName("", "x.jpg"), "/")
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://firebasestorage.googleapis.com/v0/b/bucket/o/avatars%2Fa.png?alt=media",
		publicURL("bucket", "avatars/a.png"))
}
