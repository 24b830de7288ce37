package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/service"
	"github.com/noah-isme/successpath-portal/internal/utils"
	"github.com/noah-isme/successpath-portal/internal/validation"
)

const templateContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the admin views and actions.
type AdminHandler struct {
	admin     service.AdminService
	dashboard service.DashboardService
	importer  service.MarksImportService
	logger    zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(admin service.AdminService, dashboard service.DashboardService, importer service.MarksImportService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:     admin,
		dashboard: dashboard,
		importer:  importer,
		logger:    logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches the admin routes to the /admin group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.dashboardView)

	router.Get("/students", h.listStudents)
	router.Post("/students", h.addStudent)
	router.Get("/students/:id", h.getStudent)
	router.Put("/students/:id", h.updateStudent)
	router.Delete("/students/:id", h.deleteStudent)

	router.Get("/marks", h.listMarks)
	router.Post("/marks", h.addMarks)
	router.Get("/marks/preview", h.previewPercentage)
	router.Post("/marks/bulk", h.importMarks)
	router.Get("/marks/bulk/template", h.marksTemplate)
	router.Put("/marks/:id", h.updateMarks)
	router.Delete("/marks/:id", h.deleteMarks)

	router.Get("/announcements", h.listAnnouncements)
	router.Post("/announcements", h.createAnnouncement)
	router.Put("/announcements/:id", h.updateAnnouncement)
	router.Delete("/announcements/:id", h.deleteAnnouncement)
}

func (h *AdminHandler) dashboardView(c *fiber.Ctx) error {
	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load dashboard")
	}

	view, err := h.dashboard.AdminDashboard(c.UserContext(), token)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load dashboard")
	}
	return utils.SendSuccess(c, "dashboard retrieved", view)
}

func (h *AdminHandler) listStudents(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list students")
	}

	filter := dto.StudentFilter{
		Page:    page,
		Limit:   limit,
		Search:  c.Query("search"),
		Class:   c.Query("class"),
		Section: c.Query("section"),
	}
	view, err := h.admin.ListStudents(c.UserContext(), token, filter)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list students")
	}
	return utils.SendSuccess(c, "students retrieved", view)
}

func (h *AdminHandler) getStudent(c *fiber.Ctx) error {
	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to fetch student")
	}

	student, err := h.admin.GetStudent(c.UserContext(), token, c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "failed to fetch student")
	}
	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *AdminHandler) addStudent(c *fiber.Ctx) error {
	var form validation.StudentForm
	if err := c.BodyParser(&form); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to add student")
	}

	student, err := h.admin.AddStudent(c.UserContext(), token, form)
	if err != nil {
		return respondError(c, h.logger, err, "failed to add student")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, service.MsgStudentAdded, student)
}

func (h *AdminHandler) updateStudent(c *fiber.Ctx) error {
	var form validation.StudentForm
	if err := c.BodyParser(&form); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update student")
	}

	student, err := h.admin.UpdateStudent(c.UserContext(), token, c.Params("id"), form)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update student")
	}
	return utils.SendSuccess(c, service.MsgStudentUpdated, student)
}

func (h *AdminHandler) deleteStudent(c *fiber.Ctx) error {
	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to delete student")
	}

	id := c.Params("id")
	if err := h.admin.DeleteStudent(c.UserContext(), token, id, confirmed(c)); err != nil {
		return respondError(c, h.logger, err, "failed to delete student")
	}
	return utils.SendSuccess(c, service.MsgStudentDeleted, fiber.Map{"id": id})
}

func (h *AdminHandler) listMarks(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list marks")
	}

	filter := dto.MarksFilter{
		Page:      page,
		Limit:     limit,
		Class:     c.Query("class"),
		ExamType:  c.Query("examType"),
		Subject:   c.Query("subject"),
		StudentID: c.Query("studentId"),
	}
	view, err := h.admin.ListMarks(c.UserContext(), token, filter)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list marks")
	}
	return utils.SendSuccess(c, "marks retrieved", view)
}

func (h *AdminHandler) addMarks(c *fiber.Ctx) error {
	var form validation.MarksForm
	if err := c.BodyParser(&form); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to add marks")
	}

	entry, err := h.admin.AddMarks(c.UserContext(), token, form)
	if err != nil {
		return respondError(c, h.logger, err, "failed to add marks")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, service.MsgMarksAdded, entry)
}

func (h *AdminHandler) updateMarks(c *fiber.Ctx) error {
	var form validation.MarksForm
	if err := c.BodyParser(&form); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update marks")
	}

	entry, err := h.admin.UpdateMarks(c.UserContext(), token, c.Params("id"), form)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update marks")
	}
	return utils.SendSuccess(c, service.MsgMarksUpdated, entry)
}

func (h *AdminHandler) deleteMarks(c *fiber.Ctx) error {
	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to delete marks")
	}

	id := c.Params("id")
	if err := h.admin.DeleteMarks(c.UserContext(), token, id, confirmed(c)); err != nil {
		return respondError(c, h.logger, err, "failed to delete marks")
	}
	return utils.SendSuccess(c, service.MsgMarksDeleted, fiber.Map{"id": id})
}

func (h *AdminHandler) previewPercentage(c *fiber.Ctx) error {
	preview := h.admin.PreviewPercentage(c.Query("marksObtained"), c.Query("totalMarks"))
	return utils.SendSuccess(c, "percentage preview", preview)
}

func (h *AdminHandler) importMarks(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to import marks")
	}

	reader, err := file.Open()
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to open upload")
		return utils.SendError(c, fiber.StatusBadRequest, "unable to read file")
	}
	defer reader.Close()

	result, err := h.importer.Import(c.UserContext(), token, reader)
	if err != nil {
		return respondError(c, h.logger, err, "failed to import marks")
	}

	requestLogger(h.logger, c).Info().
		Str("file", file.Filename).
		Int("inserted", result.Inserted).
		Int("rejected", len(result.Rejected)).
		Msg("marks sheet imported")
	return utils.SendSuccess(c, "marks imported", result)
}

func (h *AdminHandler) marksTemplate(c *fiber.Ctx) error {
	buf, err := h.importer.Template()
	if err != nil {
		return respondError(c, h.logger, err, "failed to build template")
	}

	c.Attachment("marks_template.xlsx")
	c.Set(fiber.HeaderContentType, templateContentType)
	return c.Send(buf.Bytes())
}

func (h *AdminHandler) listAnnouncements(c *fiber.Ctx) error {
	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list announcements")
	}

	items, err := h.admin.ListAnnouncements(c.UserContext(), token)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list announcements")
	}
	return utils.SendSuccess(c, "announcements retrieved", items)
}

func (h *AdminHandler) createAnnouncement(c *fiber.Ctx) error {
	var form validation.AnnouncementForm
	if err := c.BodyParser(&form); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create announcement")
	}

	item, err := h.admin.CreateAnnouncement(c.UserContext(), token, form)
	if err != nil {
		return respondError(c, h.logger, err, "failed to create announcement")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, service.MsgAnnouncementCreated, item)
}

func (h *AdminHandler) updateAnnouncement(c *fiber.Ctx) error {
	var form validation.AnnouncementForm
	if err := c.BodyParser(&form); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update announcement")
	}

	item, err := h.admin.UpdateAnnouncement(c.UserContext(), token, c.Params("id"), form)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update announcement")
	}
	return utils.SendSuccess(c, service.MsgAnnouncementUpdated, item)
}

func (h *AdminHandler) deleteAnnouncement(c *fiber.Ctx) error {
	token, err := credentials(c)
	if err != nil {
		return respondError(c, h.logger, err, "failed to delete announcement")
	}

	id := c.Params("id")
	if err := h.admin.DeleteAnnouncement(c.UserContext(), token, id, confirmed(c)); err != nil {
		return respondError(c, h.logger, err, "failed to delete announcement")
	}
	return utils.SendSuccess(c, service.MsgAnnouncementDeleted, fiber.Map{"id": id})
}
