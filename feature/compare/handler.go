package compare

import (
	"errors"

	"feature-diff/core/diff"
	"feature-diff/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the compare routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Post("/", h.HandleCompare)
	group.Get("/", h.HandleListRuns)
	group.Get("/:id", h.HandleGetRun)
}

// HandleCompare runs a comparison and returns its run record.
// @Summary Compare Two Datasets
// @Description Walks both datasets in key order and writes one difference row per added, deleted, edited or null-key record to the output. The request blocks until the run has finished.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body Request true "Comparison"
// @Success 200 {object} Run "Finished run"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]interface{} "Run failed"
// @Router /compare [post]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}

	l.Info("Comparison requested",
		zap.String("source_1", req.SourceA),
		zap.String("source_2", req.SourceB),
	)

	run, err := h.service.Compare(c.Context(), req, nil)
	if err != nil {
		status := statusFor(err)
		if run == nil {
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error(), "run": run})
	}

	return c.JSON(run)
}

// HandleGetRun returns a remembered run.
// @Summary Get Comparison Run
// @Description Returns the status and summary of a recent comparison.
// @Tags compare
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} Run "Run"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /compare/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	run, ok := h.service.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Run not found"})
	}
	return c.JSON(run)
}

// HandleListRuns lists the remembered runs, newest first.
// @Summary List Comparison Runs
// @Tags compare
// @Produce json
// @Success 200 {array} Run "Runs"
// @Router /compare [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

// statusFor maps comparison errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, diff.ErrConfiguration) || errors.Is(err, diff.ErrKeyTypeMismatch) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
