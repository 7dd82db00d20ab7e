package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-finance-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldEntryID targets the client-generated identifier of an entry.
	FieldEntryID = "id"

	// FieldEncryptedData targets the "<ciphertext>.<iv>" payload of a
	// remote record.
	FieldEncryptedData = "encrypted_data"

	// FieldUpdatedAt targets the modification clock of a remote record.
	FieldUpdatedAt = "updated_at"

	// FieldType targets the category of an entry draft.
	FieldType = "type"

	// FieldCreatedAt targets the optional creation time of an entry draft.
	FieldCreatedAt = "created_at"

	// FieldLogin and FieldPassword target user credentials.
	FieldLogin    = "login"
	FieldPassword = "password"
)

// MaxEntryTypeLength bounds the length of an entry type in runes.
const MaxEntryTypeLength = 64

// maxIDLength bounds entry ids; UUIDs are 36 characters.
const maxIDLength = 128

// EntryValidator implements [Validator] for the entry-related models:
// RemoteRecord, EntryDraft and User. Both value and pointer forms are
// accepted.
type EntryValidator struct{}

// NewEntryValidator constructs a new EntryValidator.
func NewEntryValidator() Validator {
	return &EntryValidator{}
}

// Validate dispatches on the dynamic type of obj. Optional fields restrict
// validation to the named subset.
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *EntryValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RemoteRecord:
		return v.validateRemoteRecord(ctx, value, fields...)
	case *models.RemoteRecord:
		return v.validateRemoteRecord(ctx, *value, fields...)

	case models.EntryDraft:
		return v.validateEntryDraft(ctx, value, fields...)
	case *models.EntryDraft:
		return v.validateEntryDraft(ctx, *value, fields...)

	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateRemoteRecord checks the clear fields of a remote record. The
// encrypted payload is opaque here.
func (v *EntryValidator) validateRemoteRecord(_ context.Context, record models.RemoteRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntryID, FieldEncryptedData, FieldUpdatedAt}
	}

	for _, f := range fields {
		switch f {
		case FieldEntryID:
			if !isValidID(record.ID) {
				return ErrInvalidEntryID
			}
		case FieldEncryptedData:
			if strings.TrimSpace(record.EncryptedPayload) == "" {
				return ErrEmptyEncryptedData
			}
		case FieldUpdatedAt:
			if record.UpdatedAt <= 0 {
				return ErrInvalidUpdatedAt
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *EntryValidator) validateEntryDraft(_ context.Context, draft models.EntryDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldCreatedAt}
		if draft.ID != "" {
			fields = append(fields, FieldEntryID)
		}
	}

	for _, f := range fields {
		switch f {
		case FieldEntryID:
			if !isValidID(draft.ID) {
				return ErrInvalidEntryID
			}
		case FieldType:
			entryType := strings.TrimSpace(draft.Type)
			if entryType == "" {
				return ErrEmptyEntryType
			}
			if utf8.RuneCountInString(entryType) > MaxEntryTypeLength {
				return ErrEntryTypeTooLong
			}
		case FieldCreatedAt:
			if draft.CreatedAt < 0 {
				return ErrInvalidCreatedAt
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *EntryValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if strings.TrimSpace(user.Login) == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// isValidID accepts non-blank ids without path separators.
func isValidID(id string) bool {
	if strings.TrimSpace(id) == "" || len(id) > maxIDLength {
		return false
	}
	return !strings.ContainsAny(id, "/?# ")
}
