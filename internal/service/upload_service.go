// Package service contains the submission and moderation workflow logic.
package service

import (
	"bytes"
	"fmt"
	"image"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"guidepost/internal/config"
	"guidepost/internal/models"
	"guidepost/internal/observability"

	// Decoder registration for payload sniffing. WebP must be registered so
	// a webp payload behind a spoofed content type is still identified.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DefaultMaxUploadSizeBytes bounds uploads when config does not override it.
const DefaultMaxUploadSizeBytes = 2 * 1024 * 1024

// AcceptInput describes an attached image to validate and persist.
type AcceptInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// UploadService enforces file-type, size, and non-emptiness constraints on
// attached images and persists them under a collision-resistant name.
type UploadService struct {
	uploadDir string
	maxBytes  int64
	now       func() time.Time
}

// NewUploadService returns an UploadService writing under cfg.UploadDir.
func NewUploadService(cfg *config.Config) *UploadService {
	uploadDir := "uploads/build_pics"
	maxBytes := int64(DefaultMaxUploadSizeBytes)
	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadSizeBytes > 0 {
			maxBytes = cfg.MaxUploadSizeBytes
		}
	}
	return &UploadService{
		uploadDir: uploadDir,
		maxBytes:  maxBytes,
		now:       time.Now,
	}
}

// Accept validates the attached image and writes it to the content store.
// It returns the stored file's path relative to the upload directory, and
// never returns a reference to a file that was not fully written.
func (s *UploadService) Accept(in AcceptInput) (string, error) {
	// JPEG and PNG only. WebP is rejected by policy even though it would
	// otherwise qualify as a raster format.
	declared := normalizeContentType(in.ContentType)
	switch declared {
	case "image/jpeg", "image/jpg", "image/png":
	case "image/webp":
		observability.UploadRejections.WithLabelValues("unsupported_media").Inc()
		return "", models.NewUnsupportedMediaError("WebP images are not supported")
	default:
		observability.UploadRejections.WithLabelValues("unsupported_media").Inc()
		return "", models.NewUnsupportedMediaError(fmt.Sprintf("Unsupported image type %q", in.ContentType))
	}

	// Second line of defense against spoofed content-type headers.
	if strings.EqualFold(filepath.Ext(in.Filename), ".webp") {
		observability.UploadRejections.WithLabelValues("unsupported_media").Inc()
		return "", models.NewUnsupportedMediaError("WebP images are not supported")
	}

	size := int64(len(in.Content))
	if size == 0 {
		observability.UploadRejections.WithLabelValues("empty_payload").Inc()
		return "", models.NewEmptyPayloadError()
	}
	if size > s.maxBytes {
		observability.UploadRejections.WithLabelValues("payload_too_large").Inc()
		return "", models.NewPayloadTooLargeError(
			fmt.Sprintf("File too large (max %d bytes)", s.maxBytes))
	}

	// Sniff the payload itself; declared type and extension are untrusted.
	format, err := sniffImageFormat(in.Content)
	if err != nil {
		observability.UploadRejections.WithLabelValues("unsupported_media").Inc()
		return "", models.NewUnsupportedMediaError("File is not a valid image")
	}
	if format == "webp" {
		observability.UploadRejections.WithLabelValues("unsupported_media").Inc()
		return "", models.NewUnsupportedMediaError("WebP images are not supported")
	}

	relPath := fmt.Sprintf("%d_%s", s.now().UnixNano(), sanitizeFilename(in.Filename))
	absPath := filepath.Join(s.uploadDir, relPath)

	if err := writeBytesToFile(absPath, in.Content); err != nil {
		return "", models.NewStorageFailureError(err)
	}

	return relPath, nil
}

// Remove deletes a previously stored file. It is the compensation hook for
// workflows whose record commit fails after the file write succeeded.
func (s *UploadService) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.uploadDir, relPath))
}

// AbsolutePath resolves a stored relative reference for serving or cleanup.
func (s *UploadService) AbsolutePath(relPath string) string {
	return filepath.Join(s.uploadDir, relPath)
}

func sniffImageFormat(content []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	return strings.ToLower(format), nil
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

// sanitizeFilename strips any path component and replaces whitespace, so
// concurrent uploads with identical human names cannot collide once the
// timestamp prefix is applied.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "upload"
	}
	return strings.Join(strings.Fields(base), "_")
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
