package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumescreener/internal/models"
	"resumescreener/internal/repositories"
)

type ResumeHandler struct {
	resumeRepo repositories.ResumeRepository
	log        *zap.Logger
}

func NewResumeHandler(resumeRepo repositories.ResumeRepository, log *zap.Logger) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo: resumeRepo,
		log:        log,
	}
}

// HandleGetResume handles GET /api/resumes/:id
func (h *ResumeHandler) HandleGetResume(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	record, err := h.resumeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume not found",
			})
		}
		h.log.Error("failed to fetch resume", zap.String("id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(record)
}

// HandleGetResumeFile handles GET /api/resumes/:id/file, serving the stored
// original document inline.
func (h *ResumeHandler) HandleGetResumeFile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	record, err := h.resumeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume not found",
			})
		}
		h.log.Error("failed to fetch resume file", zap.String("id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	if len(record.FileData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file data stored for this resume",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", record.FileName))
	return c.Send(record.FileData)
}

// HandleListUserResumes handles GET /api/resumes/user/:userId
func (h *ResumeHandler) HandleListUserResumes(c *fiber.Ctx) error {
	userID := c.Params("userId")

	records, err := h.resumeRepo.FindByUserID(userID)
	if err != nil {
		h.log.Error("failed to list resumes", zap.String("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	summaries := make([]models.ResumeSummary, 0, len(records))
	for i := range records {
		summaries = append(summaries, records[i].Summary())
	}
	return c.JSON(summaries)
}

// HandleDeleteResume handles DELETE /api/resumes/:id
func (h *ResumeHandler) HandleDeleteResume(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume ID format",
		})
	}

	if err := h.resumeRepo.DeleteByID(id); err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resume not found",
			})
		}
		h.log.Error("failed to delete resume", zap.String("id", id.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "Resume deleted successfully"})
}

// HandleDeleteUserResumes handles DELETE /api/resumes/user/:userId
func (h *ResumeHandler) HandleDeleteUserResumes(c *fiber.Ctx) error {
	userID := c.Params("userId")

	if err := h.resumeRepo.DeleteByUserID(userID); err != nil {
		h.log.Error("failed to delete user resumes", zap.String("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "All resumes deleted successfully"})
}
