package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/utils"
	"github.com/MKhiriev/go-finance-keeper/internal/validators"
	"github.com/MKhiriev/go-finance-keeper/models"
)

// RemoteEntryValidationService checks ownership and the clear fields of a
// request before handing it to the wrapped service.
type RemoteEntryValidationService struct {
	inner     RemoteEntryService
	validator validators.Validator
}

func NewRemoteEntryValidationService() RemoteEntryServiceWrapper {
	return &RemoteEntryValidationService{
		validator: validators.NewEntryValidator(),
	}
}

func (v *RemoteEntryValidationService) PutEntry(ctx context.Context, userID string, record models.RemoteRecord) (models.RemoteRecord, error) {
	if err := v.checkOwner(ctx, userID); err != nil {
		return models.RemoteRecord{}, err
	}

	if err := v.validator.Validate(ctx, record); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*RemoteEntryValidationService.PutEntry").Str("id", record.ID).Msg("invalid entry")
		return models.RemoteRecord{}, mapValidationError(err)
	}

	return v.inner.PutEntry(ctx, userID, record)
}

func (v *RemoteEntryValidationService) DeleteEntry(ctx context.Context, userID, id string) error {
	if err := v.checkOwner(ctx, userID); err != nil {
		return err
	}

	if err := v.validator.Validate(ctx, models.RemoteRecord{ID: id}, validators.FieldEntryID); err != nil {
		return mapValidationError(err)
	}

	return v.inner.DeleteEntry(ctx, userID, id)
}

func (v *RemoteEntryValidationService) ListEntries(ctx context.Context, userID string) ([]models.RemoteRecord, error) {
	if err := v.checkOwner(ctx, userID); err != nil {
		return nil, err
	}

	return v.inner.ListEntries(ctx, userID)
}

func (v *RemoteEntryValidationService) Wrap(wrapper RemoteEntryService) RemoteEntryService {
	v.inner = wrapper
	return v
}

// checkOwner rejects requests whose path user differs from the token subject.
func (v *RemoteEntryValidationService) checkOwner(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrValidationNoUserID
	}

	tokenUserID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrValidationNoUserID
	}
	if tokenUserID != userID {
		logger.FromContext(ctx).Warn().
			Str("func", "*RemoteEntryValidationService.checkOwner").
			Str("token_user_id", tokenUserID).
			Str("path_user_id", userID).
			Msg("access to a different user's entries")
		return ErrUnauthorizedAccessToDifferentUserData
	}

	return nil
}

func mapValidationError(err error) error {
	switch {
	case errors.Is(err, validators.ErrInvalidEntryID):
		return fmt.Errorf("%w: %w", ErrValidationNoEntryID, err)
	case errors.Is(err, validators.ErrEmptyEncryptedData), errors.Is(err, validators.ErrInvalidUpdatedAt):
		return fmt.Errorf("%w: %w", ErrValidationNoEntryData, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
}
