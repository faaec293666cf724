package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hqdat/examhub/internal/controller"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/service"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	examService service.ExamService
}

func NewExamController(examService service.ExamService) *ExamController {
	return &ExamController{examService: examService}
}

// CreateExam godoc
// @Summary (Admin) Create an exam
// @Description Limited exams need a start/end window with start before end; free exams must omit both. Every mark must be positive.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Param exam body dto.ExamCreateRequest true "Exam data with question references and marks"
// @Success 201 {object} dto.AdminExamDTO
// @Failure 404 {object} dto.ErrorResponse "Referenced question not found"
// @Failure 422 {object} dto.ErrorResponse
// @Router /admin/exams [post]
// @Security BearerAuth
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.ExamCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.examService.CreateExam(req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Admin CreateExam: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetAllExams godoc
// @Summary (Admin) List all exams with marks and question references
// @Tags Admin - Exams
// @Produce json
// @Success 200 {array} dto.AdminExamDTO
// @Router /admin/exams [get]
// @Security BearerAuth
func (c *ExamController) GetAllExams(ctx *gin.Context) {
	resp, err := c.examService.GetAllExams()
	if err != nil {
		log.Error().Err(err).Msg("Admin GetAllExams: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetExam godoc
// @Summary (Admin) Get an exam with marks and question references
// @Tags Admin - Exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.AdminExamDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id} [get]
// @Security BearerAuth
func (c *ExamController) GetExam(ctx *gin.Context) {
	id, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	resp, err := c.examService.GetExam(id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateExam godoc
// @Summary (Admin) Update an exam
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param exam body dto.ExamUpdateRequest true "New exam data"
// @Success 200 {object} dto.AdminExamDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id} [put]
// @Security BearerAuth
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	id, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.ExamUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.examService.UpdateExam(id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteExam godoc
// @Summary (Admin) Delete an exam and its results
// @Tags Admin - Exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id} [delete]
// @Security BearerAuth
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	id, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	if err := c.examService.DeleteExam(id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Exam deleted"})
}
