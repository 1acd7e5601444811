package service

import (
	"context"
	"errors"
	"log/slog"

	"guidepost/internal/middleware"
	"guidepost/internal/models"
	"guidepost/internal/observability"
	"guidepost/internal/repository"
	"guidepost/internal/validation"

	"gorm.io/gorm"
)

// SubmitGuideInput carries everything a submission request provides. Picture
// is nil when the submitter attached no image.
type SubmitGuideInput struct {
	Username      string
	CharacterName string
	Title         string
	Description   string
	Picture       *AcceptInput
}

// GuideService implements the submission and moderation workflows on top of
// the guide repository and the upload service.
type GuideService struct {
	guides     repository.GuideRepository
	characters repository.CharacterRepository
	uploads    *UploadService
	logger     *slog.Logger
}

func NewGuideService(
	guides repository.GuideRepository,
	characters repository.CharacterRepository,
	uploads *UploadService,
) *GuideService {
	return &GuideService{
		guides:     guides,
		characters: characters,
		uploads:    uploads,
		logger:     middleware.Logger,
	}
}

// Submit validates the input, resolves the referenced character, stores the
// optional picture, and creates the guide in the pending state. The character
// lookup happens before any file is written so a bad reference never leaves
// an orphaned file behind. If the record commit fails after the file write,
// the stored file is removed before the failure is reported.
func (s *GuideService) Submit(ctx context.Context, in SubmitGuideInput) (*models.Guide, error) {
	input, fieldErrs := validation.ValidateGuideInput(in.Username, in.CharacterName, in.Title, in.Description)
	if len(fieldErrs) > 0 {
		observability.GuideSubmissions.WithLabelValues("invalid").Inc()
		return nil, models.NewFieldValidationError(fieldErrs)
	}

	character, err := s.characters.GetByName(ctx, input.CharacterName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.GuideSubmissions.WithLabelValues("unknown_character").Inc()
			return nil, models.NewNotFoundError("Character", input.CharacterName)
		}
		return nil, models.NewInternalError(err)
	}

	var picturePath string
	if in.Picture != nil {
		picturePath, err = s.uploads.Accept(*in.Picture)
		if err != nil {
			observability.GuideSubmissions.WithLabelValues("rejected_upload").Inc()
			return nil, err
		}
	}

	guide := &models.Guide{
		Username:    input.Username,
		CharacterID: character.ID,
		Title:       input.Title,
		Description: input.Description,
		PicturePath: picturePath,
	}

	if err := s.guides.Create(ctx, guide); err != nil {
		if picturePath != "" {
			if rmErr := s.uploads.Remove(picturePath); rmErr != nil {
				s.logger.WarnContext(ctx, "failed to remove picture after commit failure",
					slog.String("path", picturePath), slog.Any("error", rmErr))
			}
		}
		observability.GuideSubmissions.WithLabelValues("storage_failure").Inc()
		return nil, models.NewStorageFailureError(err)
	}

	guide.Character = *character
	observability.GuideSubmissions.WithLabelValues("accepted").Inc()
	s.logger.InfoContext(ctx, "guide submitted",
		slog.Uint64("guide_id", uint64(guide.ID)),
		slog.String("character", character.Name))
	return guide, nil
}

// Get returns a guide by id regardless of status. Rejected guides are
// archived out of reach and report as not found.
func (s *GuideService) Get(ctx context.Context, id uint) (*models.Guide, error) {
	guide, err := s.guides.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGuideNotFound) {
			return nil, models.NewNotFoundError("Guide", id)
		}
		return nil, models.NewInternalError(err)
	}
	return guide, nil
}

// ListApproved returns the publicly visible guides.
func (s *GuideService) ListApproved(ctx context.Context) ([]models.Guide, error) {
	guides, err := s.guides.ListByStatus(ctx, models.GuideStatusApproved)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return guides, nil
}

// ListPending returns the moderation queue.
func (s *GuideService) ListPending(ctx context.Context) ([]models.Guide, error) {
	guides, err := s.guides.ListByStatus(ctx, models.GuideStatusPending)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return guides, nil
}

// Approve publishes a guide. Approving an already-approved guide is a no-op
// that still returns the guide.
func (s *GuideService) Approve(ctx context.Context, id uint) (*models.Guide, error) {
	guide, err := s.guides.Approve(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGuideNotFound) {
			return nil, models.NewNotFoundError("Guide", id)
		}
		return nil, models.NewInternalError(err)
	}
	observability.ModerationDecisions.WithLabelValues("approve").Inc()
	s.logger.InfoContext(ctx, "guide approved", slog.Uint64("guide_id", uint64(id)))
	return guide, nil
}

// Reject archives a guide. The record keeps its rejected status but is no
// longer reachable through any read path.
func (s *GuideService) Reject(ctx context.Context, id uint) error {
	if err := s.guides.Reject(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGuideNotFound) {
			return models.NewNotFoundError("Guide", id)
		}
		return models.NewInternalError(err)
	}
	observability.ModerationDecisions.WithLabelValues("reject").Inc()
	s.logger.InfoContext(ctx, "guide rejected", slog.Uint64("guide_id", uint64(id)))
	return nil
}
