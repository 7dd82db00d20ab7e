package service

import (
	"context"

	"github.com/MKhiriev/go-finance-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=RemoteEntryServiceWrapper

// RemoteEntryService serves the per-user collections of encrypted entry
// documents. It never looks inside the payloads.
type RemoteEntryService interface {
	PutEntry(ctx context.Context, userID string, record models.RemoteRecord) (models.RemoteRecord, error)
	DeleteEntry(ctx context.Context, userID, id string) error
	ListEntries(ctx context.Context, userID string) ([]models.RemoteRecord, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService reports build information and the health of the backing
// storage.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	// CheckHealth returns ErrServiceUnavailable when storage does not answer.
	CheckHealth(ctx context.Context) error
}

// Pinger is anything whose liveness can be probed, such as the server storages.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RemoteEntryServiceWrapper defines middleware composition for RemoteEntryService.
// Implementations wrap an existing RemoteEntryService to add behavior such as
// logging or validating.
type RemoteEntryServiceWrapper interface {
	Wrap(RemoteEntryService) RemoteEntryService // returns a decorated RemoteEntryService applying additional behavior
}
