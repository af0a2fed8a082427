package handler

import (
	"wikiquiz/internal/domain"
	"wikiquiz/internal/dto"
	"wikiquiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	generation service.GenerationService
	quizzes    service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(generation service.GenerationService, quizzes service.QuizService) *QuizHandler {
	return &QuizHandler{
		generation: generation,
		quizzes:    quizzes,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a Wikipedia article
// @Description Fetches the article, extracts its text and generates a multiple-choice quiz via the completion service
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Wikipedia article URL"
// @Success 200 {object} domain.QuizPayload
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be JSON with a wikipediaUrl field")
	}

	payload, err := h.generation.GenerateQuiz(c.Context(), req.WikipediaURL)
	if err != nil {
		return err
	}

	return c.JSON(payload)
}

// ListQuizzes godoc
// @Summary List stored quizzes
// @Tags quiz
// @Produce json
// @Param limit query int false "Maximum number of quizzes to return"
// @Success 200 {array} dto.QuizSummaryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")

	summaries, err := h.quizzes.ListQuizzes(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(summaries)
}

// GetQuiz godoc
// @Summary Get a stored quiz with its questions
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domain.NewInvalidInputError("quiz id is required")
	}

	quiz, err := h.quizzes.GetQuizByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(quiz)
}

// RecordAttempt godoc
// @Summary Record a completed quiz attempt
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.RecordAttemptRequest true "Attempt result"
// @Success 201 {object} dto.RecordAttemptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes/{id}/attempts [post]
func (h *QuizHandler) RecordAttempt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domain.NewInvalidInputError("quiz id is required")
	}

	var req dto.RecordAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be JSON with score and total fields")
	}

	attempt, err := h.quizzes.RecordAttempt(c.Context(), id, &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(attempt)
}

// Health godoc
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
