package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/backend"
	"github.com/noah-isme/successpath-portal/internal/display"
	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/gate"
	"github.com/noah-isme/successpath-portal/internal/middleware"
	"github.com/noah-isme/successpath-portal/internal/models"
	"github.com/noah-isme/successpath-portal/internal/service"
	"github.com/noah-isme/successpath-portal/internal/utils"
	"github.com/noah-isme/successpath-portal/internal/validation"
)

// AuthHandler serves the public views and the login, signup and logout actions.
type AuthHandler struct {
	service service.AuthService
	appName string
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, appName string, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		appName: appName,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the public routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Get("/", h.landing)
	router.Get("/admin/login", h.adminLoginView)
	router.Post("/admin/login", h.adminLogin)
	router.Get("/student/login", h.studentLoginView)
	router.Post("/student/login", h.studentLogin)
	router.Get("/student/signup", h.signupView)
	router.Post("/student/signup", h.signup)
	router.Post("/logout", h.logout)
}

func (h *AuthHandler) landing(c *fiber.Ctx) error {
	view := dto.LandingView{
		Title: h.appName,
		Entries: []dto.MenuItem{
			{Label: "Admin Login", Path: gate.LoginPath(models.RoleAdmin)},
			{Label: "Student Login", Path: gate.LoginPath(models.RoleStudent)},
			{Label: "Student Signup", Path: "/student/signup"},
		},
	}
	return utils.SendSuccess(c, "welcome", view)
}

func (h *AuthHandler) adminLoginView(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "admin login", dto.LoginView{
		Role:       models.RoleAdmin,
		SubmitPath: gate.LoginPath(models.RoleAdmin),
	})
}

func (h *AuthHandler) adminLogin(c *fiber.Ctx) error {
	var form validation.AdminLoginForm
	if err := c.BodyParser(&form); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	manager, err := middleware.EnsureSession(c)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to open session")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to open session")
	}

	if _, err := h.service.AdminLogin(c.UserContext(), manager, form); err != nil {
		return h.loginError(c, err)
	}
	return h.loggedIn(c, models.RoleAdmin)
}

// studentLoginView auto-submits when the link carries ?email=.
func (h *AuthHandler) studentLoginView(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		return utils.SendSuccess(c, "student login", dto.LoginView{
			Role:       models.RoleStudent,
			SubmitPath: gate.LoginPath(models.RoleStudent),
		})
	}

	manager, err := middleware.EnsureSession(c)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to open session")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to open session")
	}

	form := validation.StudentLoginForm{Email: email}
	if _, err := h.service.StudentLogin(c.UserContext(), manager, form); err != nil {
		return h.loginError(c, err)
	}
	return c.Redirect(gate.DashboardPath(models.RoleStudent), fiber.StatusSeeOther)
}

func (h *AuthHandler) studentLogin(c *fiber.Ctx) error {
	var form validation.StudentLoginForm
	if err := c.BodyParser(&form); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	manager, err := middleware.EnsureSession(c)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to open session")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to open session")
	}

	if _, err := h.service.StudentLogin(c.UserContext(), manager, form); err != nil {
		return h.loginError(c, err)
	}
	return h.loggedIn(c, models.RoleStudent)
}

func (h *AuthHandler) loggedIn(c *fiber.Ctx, role models.Role) error {
	target := gate.DashboardPath(role)
	return utils.SendSuccess(c, service.MsgLoggedIn, dto.LoginResult{
		Redirect: target,
		Session:  middleware.SessionView(middleware.SessionState(c), target),
	})
}

// loginError keeps credential rejections apart from expired sessions: a 401
// from the login endpoint is a wrong password, not a stale token.
func (h *AuthHandler) loginError(c *fiber.Ctx, err error) error {
	var actionErr *service.ActionError
	if errors.As(err, &actionErr) {
		status := actionErr.Status()
		switch {
		case errors.Is(err, backend.ErrUnavailable):
			status = fiber.StatusBadGateway
		case status == 0:
			// success:false in a 2xx body
			status = fiber.StatusUnauthorized
		case status >= fiber.StatusInternalServerError:
			status = fiber.StatusBadGateway
		}
		requestLogger(h.logger, c).Warn().Err(err).Int("status", status).Msg("login rejected")
		return utils.SendError(c, status, actionErr.UserMessage())
	}
	return respondError(c, h.logger, err, "login failed")
}

func (h *AuthHandler) signupView(c *fiber.Ctx) error {
	wizard := validation.NewSignupWizard()
	return utils.SendSuccess(c, "student signup", signupView(wizard))
}

func (h *AuthHandler) signup(c *fiber.Ctx) error {
	var cmd service.SignupCommand
	if err := c.BodyParser(&cmd); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	wizard, err := h.service.Signup(c.UserContext(), cmd)
	if err != nil {
		return respondError(c, h.logger, err, "signup failed")
	}

	view := signupView(wizard)
	switch {
	case wizard.Done():
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, service.MsgRegistrationComplete, view)
	case wizard.Error() != "":
		return utils.SendErrorWithData(c, fiber.StatusUnprocessableEntity, wizard.Error(), view)
	default:
		return utils.SendSuccess(c, "signup step", view)
	}
}

func signupView(wizard *validation.SignupWizard) dto.SignupView {
	return dto.SignupView{
		Step:      int(wizard.Step()),
		Error:     wizard.Error(),
		StudentID: wizard.StudentID(),
		Strength:  string(display.PasswordStrength(wizard.Form().Password)),
	}
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	if manager, ok := middleware.SessionFrom(c); ok {
		h.service.Logout(c.UserContext(), manager)
	}
	return utils.SendSuccess(c, service.MsgLoggedOut, dto.LoginResult{
		Redirect: gate.LandingPath,
		Session:  middleware.SessionView(middleware.SessionState(c), gate.LandingPath),
	})
}
