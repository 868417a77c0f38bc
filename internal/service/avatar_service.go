package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"hospital-management-backend/internal/infrastructure/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

var (
	ErrAvatarRequired         = errors.New("doctor avatar required")
	ErrUnsupportedImageFormat = errors.New("file format not supported")
	ErrAvatarUploadFailed     = errors.New("failed to upload avatar to image host")
)

// allowed avatar content types, checked by sniffing the bytes rather than
// trusting the client-supplied Content-Type
var allowedImageTypes = []string{"image/png", "image/jpeg", "image/webp"}

// AvatarSource is either a fresh upload (File set) or a reference to an
// already-served asset (ExistingPath set). Exactly one should be provided.
type AvatarSource struct {
	File         io.Reader
	ExistingPath string
}

// IsEmpty reports whether the source carries neither an upload nor a reference.
func (s AvatarSource) IsEmpty() bool {
	return s.File == nil && s.ExistingPath == ""
}

type AvatarService interface {
	// Ingest resolves an AvatarSource to a stored image reference. Uploads
	// are validated and pushed to the external image host; references are
	// recorded as relative URLs without touching the host.
	Ingest(ctx context.Context, src AvatarSource) (*storage.UploadResult, error)
}

type avatarService struct {
	store storage.ImageStore
	log   *logrus.Logger
}

func NewAvatarService(store storage.ImageStore, log *logrus.Logger) AvatarService {
	return &avatarService{
		store: store,
		log:   log,
	}
}

func (s *avatarService) Ingest(ctx context.Context, src AvatarSource) (*storage.UploadResult, error) {
	if src.ExistingPath != "" {
		return s.referenceExisting(src.ExistingPath), nil
	}

	if src.File == nil {
		return nil, ErrAvatarRequired
	}

	data, err := io.ReadAll(src.File)
	if err != nil {
		s.log.Warnf("Failed to read avatar file: %+v", err)
		return nil, ErrAvatarUploadFailed
	}

	if !isAllowedImageType(mimetype.Detect(data)) {
		return nil, ErrUnsupportedImageFormat
	}

	result, err := s.store.Upload(ctx, bytes.NewReader(data))
	if err != nil {
		// upstream detail stays in the server log, never in the response
		s.log.Errorf("Image host upload failed: %+v", err)
		return nil, ErrAvatarUploadFailed
	}

	return result, nil
}

// referenceExisting records an already-served asset. The URL stays relative
// so it resolves against whichever host serves the static assets.
func (s *avatarService) referenceExisting(path string) *storage.UploadResult {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &storage.UploadResult{
		PublicID: fmt.Sprintf("hospital_doctors/%d", time.Now().UnixMilli()),
		URL:      path,
	}
}

func isAllowedImageType(mime *mimetype.MIME) bool {
	for _, allowed := range allowedImageTypes {
		if mime.Is(allowed) {
			return true
		}
	}
	return false
}
