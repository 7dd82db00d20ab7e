package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidJWTParams = errors.New("invalid params for generating JWT token")
	ErrEmptySubject     = errors.New("token has no subject")
	ErrInvalidBearer    = errors.New("invalid authorization header")
)

// GenerateJWTToken signs an HS256 token for userID with iss, sub, iat and exp
// claims. Every argument is required.
func GenerateJWTToken(issuer, userID string, lifetime time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || userID == "" || lifetime <= 0 || signKey == "" {
		return models.Token{}, ErrInvalidJWTParams
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
	})

	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("sign JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: signed, UserID: userID}, nil
}

// ValidateAndParseJWTToken verifies the HS256 signature, the issuer and the
// expiry of raw and returns the token with its subject as UserID.
func ValidateAndParseJWTToken(raw, signKey, issuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(raw, &models.Token{}, func(*jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("validate JWT token: %w", err)
	}

	userID, err := subjectOf(token.Claims)
	if err != nil {
		return models.Token{}, err
	}

	return models.Token{Token: token, SignedString: raw, UserID: userID}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.Contains(token, " ") {
		return "", ErrInvalidBearer
	}
	return token, nil
}

// ParseUserIDFromJWT reads the subject of raw without verifying the
// signature. The client uses it to learn its own user id; the server always
// verifies with [ValidateAndParseJWTToken].
func ParseUserIDFromJWT(raw string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("parse JWT token: %w", err)
	}
	return subjectOf(token.Claims)
}

func subjectOf(claims jwt.Claims) (string, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("read subject: %w", err)
	}
	if sub == "" {
		return "", ErrEmptySubject
	}
	return sub, nil
}
