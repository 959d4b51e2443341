package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"resumescreener/internal/auth"
	"resumescreener/internal/models"
	"resumescreener/internal/services"
)

type AnalyzeHandler struct {
	analyzer    services.BatchAnalyzer
	verifier    *auth.TokenVerifier
	maxFileSize int64
	log         *zap.Logger
}

func NewAnalyzeHandler(
	analyzer services.BatchAnalyzer,
	verifier *auth.TokenVerifier,
	maxFileSize int64,
	log *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		verifier:    verifier,
		maxFileSize: maxFileSize,
		log:         log,
	}
}

// HandleAnalyze handles POST /api/resumes/analyze. Accepts one or more
// documents under "files", or a single legacy "file" field, analyzed against
// the shared jobDescription/jobRole. Callers without a valid bearer token are
// analyzed anonymously.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	userID := h.verifier.ExtractUserID(c.Get(fiber.HeaderAuthorization))

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		// Backward compatible single-file field
		fileHeaders = form.File["file"]
	}

	items := make([]models.AnalysisItem, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		if header.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("File too large: %s. Max size: %d bytes", header.Filename, h.maxFileSize),
			})
		}

		data, err := readFileHeader(header)
		if err != nil {
			h.log.Error("failed to read uploaded file", zap.String("file", header.Filename), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to read uploaded file",
			})
		}

		items = append(items, models.AnalysisItem{
			FileName:    header.Filename,
			ContentType: header.Header.Get(fiber.HeaderContentType),
			Data:        data,
		})
	}

	reqCtx := models.AnalysisContext{
		JobDescription: c.FormValue("jobDescription"),
		JobRole:        c.FormValue("jobRole"),
		UserID:         userID,
	}

	batch, err := h.analyzer.Analyze(c.UserContext(), items, reqCtx)
	if err != nil {
		status, message := clientError(err)
		return c.Status(status).JSON(fiber.Map{"error": message})
	}

	// Single upload keeps the flat response shape
	if len(batch.Items) == 1 {
		item := batch.Items[0]
		if item.Err != nil {
			status, message := clientError(item.Err)
			return c.Status(status).JSON(fiber.Map{"error": message})
		}
		return c.JSON(item.Result)
	}

	responses := make([]any, 0, len(batch.Items))
	for _, item := range batch.Items {
		if item.Err != nil {
			_, message := clientError(item.Err)
			responses = append(responses, fiber.Map{
				"file":  item.FileName,
				"error": message,
			})
			continue
		}
		responses = append(responses, item.Result)
	}
	return c.JSON(responses)
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// clientError maps a pipeline failure to an HTTP status and a message safe to
// expose. Validation messages pass through; everything else stays generic and
// the detail lives in the server log only.
func clientError(err error) (int, string) {
	var ae *services.AnalysisError
	if errors.As(err, &ae) {
		switch ae.Kind {
		case services.ErrKindValidation:
			return fiber.StatusBadRequest, ae.Message
		case services.ErrKindExtraction:
			return fiber.StatusInternalServerError, "Failed to process document"
		case services.ErrKindPersistence:
			return fiber.StatusInternalServerError, "Failed to store analysis result"
		}
	}
	return fiber.StatusInternalServerError, "Internal server error"
}
