package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kairo_backend/internal/logger"
	"kairo_backend/internal/repositories"
	"kairo_backend/internal/services/dto"
	"kairo_backend/internal/storage"
	"kairo_backend/pkg/apperrors"
)

const (
	maxResumeSize  = 5 << 20 // 5 MiB
	maxPictureSize = 2 << 20 // 2 MiB
)

var resumeContentTypes = map[string]string{
	"application/pdf": ".pdf",
}

var pictureContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UploadService interface {
	UploadResume(ctx context.Context, db *gorm.DB, userID string, reader io.Reader, size int64, contentType, filename string) (*dto.UploadResponse, error)
	RemoveResume(ctx context.Context, db *gorm.DB, userID string) error
	UploadPicture(ctx context.Context, db *gorm.DB, userID string, reader io.Reader, size int64, contentType string) (*dto.UploadResponse, error)
	RemovePicture(ctx context.Context, db *gorm.DB, userID string) error
	ServeFile(ctx context.Context, path string) (io.ReadCloser, error)
}

type UploadServiceImpl struct {
	store       storage.Storage
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewUploadService(store storage.Storage, profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository) UploadService {
	return &UploadServiceImpl{store: store, profileRepo: profileRepo, userRepo: userRepo}
}

func (s *UploadServiceImpl) UploadResume(ctx context.Context, db *gorm.DB, userID string, reader io.Reader, size int64, contentType, filename string) (*dto.UploadResponse, error) {
	ext, ok := resumeContentTypes[contentType]
	if !ok {
		return nil, apperrors.NewBadRequestError("Resume must be a PDF")
	}
	if size > maxResumeSize {
		return nil, apperrors.NewBadRequestError("Resume exceeds the 5 MB limit")
	}

	profile, err := s.profileRepo.FindApplicantByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "Applicant profile not found")
		}
		return nil, apperrors.InternalError(err)
	}
	previousURL := profile.ResumeURL

	key := fmt.Sprintf("resumes/%s/%s%s", userID, uuid.NewString(), ext)
	if err := s.store.Save(ctx, key, io.LimitReader(reader, maxResumeSize), contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.profileRepo.UpdateApplicantFields(db, userID, map[string]interface{}{"resume_url": url}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	s.deleteObject(ctx, previousURL)

	name := filepath.Base(filename)
	if name == "." || name == "/" {
		name = "resume" + ext
	}
	return &dto.UploadResponse{URL: url, Name: name, Size: size}, nil
}

func (s *UploadServiceImpl) UploadPicture(ctx context.Context, db *gorm.DB, userID string, reader io.Reader, size int64, contentType string) (*dto.UploadResponse, error) {
	ext, ok := pictureContentTypes[contentType]
	if !ok {
		return nil, apperrors.NewBadRequestError("Profile picture must be JPEG, PNG or WebP")
	}
	if size > maxPictureSize {
		return nil, apperrors.NewBadRequestError("Profile picture exceeds the 2 MB limit")
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	previousURL := user.ImageURL

	key := fmt.Sprintf("pictures/%s/%s%s", userID, uuid.NewString(), ext)
	if err := s.store.Save(ctx, key, io.LimitReader(reader, maxPictureSize), contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateImageURL(db, userID, url); err != nil {
		return nil, apperrors.InternalError(err)
	}
	s.deleteObject(ctx, previousURL)
	return &dto.UploadResponse{URL: url, Name: "picture" + ext, Size: size}, nil
}

func (s *UploadServiceImpl) RemoveResume(ctx context.Context, db *gorm.DB, userID string) error {
	profile, err := s.profileRepo.FindApplicantByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.NewNotFoundError("profile", "Applicant profile not found")
		}
		return apperrors.InternalError(err)
	}
	previousURL := profile.ResumeURL
	if err := s.profileRepo.UpdateApplicantFields(db, userID, map[string]interface{}{"resume_url": ""}); err != nil {
		return apperrors.InternalError(err)
	}
	s.deleteObject(ctx, previousURL)
	return nil
}

func (s *UploadServiceImpl) RemovePicture(ctx context.Context, db *gorm.DB, userID string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	previousURL := user.ImageURL
	if err := s.userRepo.UpdateImageURL(db, userID, ""); err != nil {
		return apperrors.InternalError(err)
	}
	s.deleteObject(ctx, previousURL)
	return nil
}

// deleteObject drops the object behind a previously issued public URL.
// Failures only leave an orphaned file, so they are logged and swallowed.
func (s *UploadServiceImpl) deleteObject(ctx context.Context, url string) {
	if url == "" {
		return
	}
	idx := strings.Index(url, "/files/")
	if idx < 0 {
		return
	}
	key := url[idx+len("/files/"):]
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		logger.Warn("failed to delete replaced upload", "key", key, "error", err)
	}
}

func (s *UploadServiceImpl) ServeFile(ctx context.Context, path string) (io.ReadCloser, error) {
	// only paths produced by the upload endpoints are servable
	if !strings.HasPrefix(path, "resumes/") && !strings.HasPrefix(path, "pictures/") {
		return nil, apperrors.NewNotFoundError("file", "File not found")
	}
	reader, err := s.store.Get(ctx, path)
	if err != nil {
		return nil, apperrors.NewNotFoundError("file", "File not found")
	}
	return reader, nil
}
