package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/backend"
	"github.com/noah-isme/successpath-portal/internal/middleware"
	"github.com/noah-isme/successpath-portal/internal/service"
	"github.com/noah-isme/successpath-portal/internal/session"
	"github.com/noah-isme/successpath-portal/internal/utils"
	"github.com/noah-isme/successpath-portal/internal/validation"
)

// MsgSessionExpired is shown after the backend rejected the stored token.
const MsgSessionExpired = "Session expired. Please log in again."

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// credentials returns the bearer token of the bound session.
func credentials(c *fiber.Ctx) (string, error) {
	manager, ok := middleware.SessionFrom(c)
	if !ok {
		return "", session.ErrNoSession
	}
	token, _, err := manager.Credentials()
	return token, err
}

func confirmed(c *fiber.Ctx) bool {
	value := strings.TrimSpace(c.Query("confirm"))
	if value == "" {
		return false
	}
	ok, err := strconv.ParseBool(value)
	return err == nil && ok
}

// respondError maps a use-case error onto the envelope. A token the backend no
// longer accepts ends the browser session silently.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error, msg string) error {
	var (
		validationErr *validation.Error
		actionErr     *service.ActionError
	)

	switch {
	case errors.As(err, &validationErr):
		requestLogger(logger, c).Debug().Str("reason", validationErr.Message).Msg("form rejected")
		return utils.SendError(c, fiber.StatusUnprocessableEntity, validationErr.UserMessage())
	case errors.Is(err, service.ErrConfirmationRequired):
		return utils.SendError(c, fiber.StatusPreconditionRequired, "Please confirm this action")
	case errors.Is(err, service.ErrMissingID):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	case errors.Is(err, session.ErrNoSession):
		return utils.SendError(c, fiber.StatusUnauthorized, "Please log in to continue")
	case backend.IsUnauthorized(err):
		if manager, ok := middleware.SessionFrom(c); ok {
			manager.Logout(c.UserContext())
		}
		requestLogger(logger, c).Info().Msg("backend rejected session token")
		return utils.SendError(c, fiber.StatusUnauthorized, MsgSessionExpired)
	case errors.Is(err, service.ErrImportTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrImportTypeNotAllowed):
		return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, service.ErrImportEmpty), errors.Is(err, service.ErrUnknownSignupAction):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &actionErr):
		status := actionErr.Status()
		if status < fiber.StatusBadRequest || status >= fiber.StatusInternalServerError {
			status = fiber.StatusBadGateway
			requestLogger(logger, c).Error().Err(err).Msg(msg)
		} else {
			requestLogger(logger, c).Warn().Err(err).Msg(msg)
		}
		return utils.SendError(c, status, actionErr.UserMessage())
	default:
		requestLogger(logger, c).Error().Err(err).Msg(msg)
		return utils.SendError(c, fiber.StatusInternalServerError, msg)
	}
}
