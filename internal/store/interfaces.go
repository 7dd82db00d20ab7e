package store

import (
	"context"

	"github.com/MKhiriev/go-finance-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts of the remote store.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// RemoteEntryRepository is the server-side collection of encrypted entry
// documents. Every call is scoped by user id; there is no merge logic here.
type RemoteEntryRepository interface {
	// Put inserts or replaces a document and stamps the server time.
	Put(ctx context.Context, userID string, record models.RemoteRecord) (models.RemoteRecord, error)
	// Delete removes a document; deleting a missing one is not an error.
	Delete(ctx context.Context, userID, id string) error
	GetAll(ctx context.Context, userID string) ([]models.RemoteRecord, error)
}
