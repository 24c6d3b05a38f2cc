// Package auth authenticates operators for the admin routes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"petquote/internal/models"
	"petquote/internal/repositories"
)

const issuer = "petquote-api"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session expired")
	ErrMissingSecret      = errors.New("token secret not configured")
)

type Service interface {
	Login(ctx context.Context, email, password string) (string, *models.Operator, error)
	ParseToken(tokenString string) (*models.OperatorClaims, error)
	Verify(ctx context.Context, claims *models.OperatorClaims) error
}

type service struct {
	operators repositories.OperatorRepository
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(operators repositories.OperatorRepository, secret string, ttl time.Duration) Service {
	return &service{
		operators: operators,
		secret:    []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// HashPassword bcrypt-hashes an operator password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *models.Operator, error) {
	operator, err := s.operators.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repositories.ErrNotFound) {
		log.Info().Str("email", email).Msg("login failed: operator not found")
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("look up operator: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(password)); err != nil {
		log.Info().Uint("operator_id", operator.ID).Msg("login failed: wrong password")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issue(operator)
	if err != nil {
		return "", nil, err
	}

	if err := s.operators.TouchLastLogin(ctx, operator.ID, s.now()); err != nil {
		log.Warn().Err(err).Uint("operator_id", operator.ID).Msg("could not record last login")
	}
	return token, operator, nil
}

func (s *service) issue(operator *models.Operator) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := s.now()
	claims := models.OperatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(operator.ID), 10),
		},
		OperatorID:   operator.ID,
		Email:        operator.Email,
		Permissions:  models.DefaultOperatorPermissions(),
		TokenVersion: operator.TokenVersion,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *service) ParseToken(tokenString string) (*models.OperatorClaims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}

	claims := &models.OperatorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Verify checks that the operator still exists and the token version matches.
func (s *service) Verify(ctx context.Context, claims *models.OperatorClaims) error {
	operator, err := s.operators.GetByID(ctx, claims.OperatorID)
	if err != nil {
		return ErrInvalidToken
	}
	if operator.TokenVersion != claims.TokenVersion {
		return ErrSessionExpired
	}
	return nil
}
