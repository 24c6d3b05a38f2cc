package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"petquote/internal/repositories"
	"petquote/internal/services/auth"
	"petquote/internal/utils/response"
)

// CacheInvalidator drops a cached rate.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type AdminHandler struct {
	authService auth.Service
	snapshots   repositories.RateSnapshotRepository
	cache       CacheInvalidator
}

func NewAdminHandler(authService auth.Service, snapshots repositories.RateSnapshotRepository, cache CacheInvalidator) *AdminHandler {
	return &AdminHandler{authService: authService, snapshots: snapshots, cache: cache}
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.Email == "" || input.Password == "" {
		return response.BadRequest(c, "email and password are required")
	}

	token, operator, err := h.authService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return response.Unauthorized(c, "invalid credentials")
		}
		log.Error().Err(err).Msg("operator login failed")
		return response.ServerError(c, "login failed")
	}

	return response.Success(c, fiber.Map{
		"token": token,
		"operator": fiber.Map{
			"id":    operator.ID,
			"email": operator.Email,
		},
	})
}

func (h *AdminHandler) ListRates(c *fiber.Ctx) error {
	snapshots, err := h.snapshots.ListRecent(c.UserContext(), c.QueryInt("limit", repositories.DefaultSnapshotLimit))
	if err != nil {
		log.Error().Err(err).Msg("list rate snapshots")
		return response.ServerError(c, "failed to load rate history")
	}
	return response.Success(c, fiber.Map{"snapshots": snapshots})
}

func (h *AdminHandler) FlushRateCache(c *fiber.Ctx) error {
	if h.cache == nil {
		return response.Success(c, fiber.Map{"flushed": false})
	}
	if err := h.cache.Invalidate(c.UserContext()); err != nil {
		log.Error().Err(err).Msg("flush rate cache")
		return response.ServerError(c, "failed to flush rate cache")
	}
	return response.Success(c, fiber.Map{"flushed": true})
}
