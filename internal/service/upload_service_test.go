package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"guidepost/internal/config"
	"guidepost/internal/models"
	"guidepost/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUploadService(t *testing.T) *UploadService {
	t.Helper()
	return NewUploadService(&config.Config{
		UploadDir:          t.TempDir(),
		MaxUploadSizeBytes: DefaultMaxUploadSizeBytes,
	})
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestUploadAcceptStoresFile(t *testing.T) {
	svc := newTestUploadService(t)
	payload := testutil.TinyPNG()

	relPath, err := svc.Accept(AcceptInput{
		Filename:    "ayaka build.png",
		ContentType: "image/png",
		Content:     payload,
	})
	require.NoError(t, err)
	assert.NotContains(t, relPath, " ", "stored name should have whitespace sanitized")
	assert.True(t, strings.HasSuffix(relPath, "ayaka_build.png"))

	stored, err := os.ReadFile(svc.AbsolutePath(relPath))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}

func TestUploadAcceptContentTypes(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		content     []byte
		wantCode    string
	}{
		{"png allowed", "a.png", "image/png", testutil.TinyPNG(), ""},
		{"jpeg allowed", "a.jpg", "image/jpeg", testutil.TinyJPEG(), ""},
		{"jpg alias allowed", "a.jpg", "image/jpg", testutil.TinyJPEG(), ""},
		{"content type with params", "a.png", "image/png; charset=binary", testutil.TinyPNG(), ""},
		{"webp rejected", "a.webp", "image/webp", testutil.TinyWebP(), models.CodeUnsupportedMedia},
		{"gif rejected", "a.gif", "image/gif", []byte("GIF89a"), models.CodeUnsupportedMedia},
		{"text rejected", "a.txt", "text/plain", []byte("hello"), models.CodeUnsupportedMedia},
		{"missing type rejected", "a.png", "", testutil.TinyPNG(), models.CodeUnsupportedMedia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestUploadService(t)
			_, err := svc.Accept(AcceptInput{
				Filename:    tt.filename,
				ContentType: tt.contentType,
				Content:     tt.content,
			})
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assertAppErrorCode(t, err, tt.wantCode)
			}
		})
	}
}

func TestUploadAcceptSpoofedWebP(t *testing.T) {
	svc := newTestUploadService(t)

	// Extension betrays the declared type.
	_, err := svc.Accept(AcceptInput{
		Filename:    "sneaky.webp",
		ContentType: "image/png",
		Content:     testutil.TinyWebP(),
	})
	assertAppErrorCode(t, err, models.CodeUnsupportedMedia)

	// Extension and declared type both lie, payload bytes do not.
	_, err = svc.Accept(AcceptInput{
		Filename:    "sneaky.png",
		ContentType: "image/png",
		Content:     testutil.TinyWebP(),
	})
	assertAppErrorCode(t, err, models.CodeUnsupportedMedia)
}

func TestUploadAcceptGarbagePayload(t *testing.T) {
	svc := newTestUploadService(t)
	_, err := svc.Accept(AcceptInput{
		Filename:    "a.png",
		ContentType: "image/png",
		Content:     []byte("definitely not an image"),
	})
	assertAppErrorCode(t, err, models.CodeUnsupportedMedia)
}

func TestUploadAcceptSizeLimits(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		wantCode string
	}{
		{"empty rejected", nil, models.CodeEmptyPayload},
		{"exactly at limit accepted", testutil.PadTo(testutil.TinyPNG(), DefaultMaxUploadSizeBytes), ""},
		{"one over limit rejected", testutil.PadTo(testutil.TinyPNG(), DefaultMaxUploadSizeBytes+1), models.CodePayloadTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestUploadService(t)
			_, err := svc.Accept(AcceptInput{
				Filename:    "a.png",
				ContentType: "image/png",
				Content:     tt.content,
			})
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assertAppErrorCode(t, err, tt.wantCode)
			}
		})
	}
}

func TestUploadEmptyCheckedBeforeSniffing(t *testing.T) {
	svc := newTestUploadService(t)
	_, err := svc.Accept(AcceptInput{
		Filename:    "a.png",
		ContentType: "image/png",
		Content:     []byte{},
	})
	assertAppErrorCode(t, err, models.CodeEmptyPayload)
}

func TestUploadNamesAreUnique(t *testing.T) {
	svc := newTestUploadService(t)
	counter := time.Now().UnixNano()
	svc.now = func() time.Time {
		counter++
		return time.Unix(0, counter)
	}

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		relPath, err := svc.Accept(AcceptInput{
			Filename:    "same name.png",
			ContentType: "image/png",
			Content:     testutil.TinyPNG(),
		})
		require.NoError(t, err)
		require.False(t, seen[relPath], "duplicate stored name %s", relPath)
		seen[relPath] = true
	}
}

func TestUploadRemove(t *testing.T) {
	svc := newTestUploadService(t)
	relPath, err := svc.Accept(AcceptInput{
		Filename:    "a.png",
		ContentType: "image/png",
		Content:     testutil.TinyPNG(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(relPath))
	_, err = os.Stat(svc.AbsolutePath(relPath))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, svc.Remove(""), "empty reference is a no-op")
}

func TestUploadSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b.png", sanitizeFilename("  a \t b.png "))
	assert.Equal(t, "b.png", sanitizeFilename(filepath.Join("..", "a", "b.png")))
	assert.Equal(t, "upload", sanitizeFilename(""))
}
