package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/service"
	"github.com/noah-isme/successpath-portal/internal/utils"
	"github.com/noah-isme/successpath-portal/internal/validation"
)

// StudentHandler serves the student's own views.
type StudentHandler struct {
	student   service.StudentService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(student service.StudentService, dashboard service.DashboardService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		student:   student,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the student routes to the /student group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.dashboardView)
	router.Get("/results", h.results)
	router.Get("/profile", h.profile)
	router.Put("/profile", h.updateProfile)
	router.Post("/change-password", h.changePassword)
}

func (h *StudentHandler) dashboardView(c *fiber.Ctx) error {
	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load dashboard")
	}

	view, err := h.dashboard.StudentDashboard(c.UserContext(), token)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load dashboard")
	}
	return utils.SendSuccess(c, "dashboard retrieved", view)
}

func (h *StudentHandler) results(c *fiber.Ctx) error {
	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load results")
	}

	view, err := h.dashboard.Results(c.UserContext(), token)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load results")
	}
	return utils.SendSuccess(c, "results retrieved", view)
}

func (h *StudentHandler) profile(c *fiber.Ctx) error {
	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load profile")
	}

	student, err := h.student.Profile(c.UserContext(), token)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load profile")
	}
	return utils.SendSuccess(c, "profile retrieved", student)
}

func (h *StudentHandler) updateProfile(c *fiber.Ctx) error {
	var form validation.ProfileForm
	if err := c.BodyParser(&form); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update profile")
	}

	student, err := h.student.UpdateProfile(c.UserContext(), token, form)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update profile")
	}
	return utils.SendSuccess(c, service.MsgProfileUpdated, student)
}

func (h *StudentHandler) changePassword(c *fiber.Ctx) error {
	var form validation.PasswordChangeForm
	if err := c.BodyParser(&form); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to change password")
	}

	if err := h.student.ChangePassword(c.UserContext(), token, form); err != nil {
		return respondError(c, h.logger, err, "failed to change password")
	}
	return utils.SendSuccess(c, service.MsgPasswordChanged, nil)
}
