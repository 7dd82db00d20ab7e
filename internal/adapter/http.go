package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/utils"
	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/go-resty/resty/v2"
)

const (
	registerPath = "/api/auth/register"
	loginPath    = "/api/auth/login"
	healthPath   = "/api/health"
	entriesPath  = "/api/users/{userID}/entries/"
	entryPath    = "/api/users/{userID}/entries/{id}"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/register and reads the bearer token from the Authorization
// response header.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Session, error) {
	return h.authenticate(ctx, registerPath, user)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login and reads the bearer token from the Authorization
// response header.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Session, error) {
	return h.authenticate(ctx, loginPath, user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (models.Session, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: user.Login, Password: user.Password}).
		Post(path)
	if err != nil {
		return models.Session{}, transportError("auth request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Session{}, fmt.Errorf("parse bearer token: %w", err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Session{}, fmt.Errorf("parse user id: %w", err)
	}

	h.SetToken(token)
	return models.Session{UserID: userID, Login: user.Login, Token: token}, nil
}

// Ping implements [ServerAdapter] with GET /api/health.
func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(healthPath)
	if err != nil {
		return transportError("health request", err)
	}

	return mapHTTPError(resp)
}

// Put implements [ServerAdapter] with PUT /api/users/{userID}/entries/{id}.
func (h *httpServerAdapter) Put(ctx context.Context, userID string, record models.RemoteRecord) error {
	log := logger.FromContext(ctx)

	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"userID": userID, "id": record.ID}).
		SetHeader("Content-Type", "application/json").
		SetBody(record.ToDocument()).
		Put(entryPath)
	if err != nil {
		log.Err(err).Str("func", "*httpServerAdapter.Put").Str("id", record.ID).Msg("request failed")
		return transportError("put entry", err)
	}

	return mapHTTPError(resp)
}

// Delete implements [ServerAdapter] with DELETE /api/users/{userID}/entries/{id}.
// A 404 answer counts as success.
func (h *httpServerAdapter) Delete(ctx context.Context, userID, id string) error {
	log := logger.FromContext(ctx)

	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"userID": userID, "id": id}).
		Delete(entryPath)
	if err != nil {
		log.Err(err).Str("func", "*httpServerAdapter.Delete").Str("id", id).Msg("request failed")
		return transportError("delete entry", err)
	}

	if err = mapHTTPError(resp); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// GetAll implements [ServerAdapter] with GET /api/users/{userID}/entries/.
func (h *httpServerAdapter) GetAll(ctx context.Context, userID string) ([]models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	resp, err := h.authedRequest(ctx).
		SetPathParam("userID", userID).
		Get(entriesPath)
	if err != nil {
		log.Err(err).Str("func", "*httpServerAdapter.GetAll").Msg("request failed")
		return nil, transportError("get entries", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var documents []models.RemoteDocument
	if err = json.Unmarshal(resp.Body(), &documents); err != nil {
		return nil, fmt.Errorf("decode entries response: %w", err)
	}

	records := make([]models.RemoteRecord, 0, len(documents))
	for _, document := range documents {
		records = append(records, document.ToRecord())
	}
	return records, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
