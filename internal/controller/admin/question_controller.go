package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hqdat/examhub/internal/controller"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// CreateQuestion godoc
// @Summary (Admin) Create a question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question body dto.QuestionCreateRequest true "Question with exactly 4 options and the correct option index"
// @Success 201 {object} dto.QuestionResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /admin/questions [post]
// @Security BearerAuth
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.questionService.CreateQuestion(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateQuestion: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetAllQuestions godoc
// @Summary (Admin) List all questions
// @Tags Admin - Questions
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Router /admin/questions [get]
// @Security BearerAuth
func (c *QuestionController) GetAllQuestions(ctx *gin.Context) {
	resp, err := c.questionService.GetAllQuestions()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetQuestion godoc
// @Summary (Admin) Get a question
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [get]
// @Security BearerAuth
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	resp, err := c.questionService.GetQuestion(id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Description Fails once any submitted result references the question.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionCreateRequest true "New question content"
// @Success 200 {object} dto.QuestionResponse
// @Failure 403 {object} dto.ErrorResponse "Question already answered in a submitted result"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [put]
// @Security BearerAuth
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.questionService.UpdateQuestion(id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [delete]
// @Security BearerAuth
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}
