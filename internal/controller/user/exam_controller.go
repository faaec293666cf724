package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hqdat/examhub/internal/controller"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/middleware"
	"github.com/hqdat/examhub/internal/service"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	listingService    service.ListingService
	examService       service.ExamService
	submissionService service.SubmissionService
	resultService     service.ResultService
}

func NewExamController(
	listingService service.ListingService,
	examService service.ExamService,
	submissionService service.SubmissionService,
	resultService service.ResultService,
) *ExamController {
	return &ExamController{
		listingService:    listingService,
		examService:       examService,
		submissionService: submissionService,
		resultService:     resultService,
	}
}

// ListExams godoc
// @Summary List exams, optionally partitioned
// @Description Without group_by returns a flat list. group_by=timing splits into free/limited; group_by=attempt splits into done/not_done for the caller.
// @Tags Exams
// @Produce json
// @Param title query string false "Filter by title substring"
// @Param is_finished query bool false "Filter by finished flag"
// @Param group_by query string false "Partition dimension" Enums(timing, attempt)
// @Success 200 {array} dto.ExamSummaryDTO
// @Failure 422 {object} dto.ErrorResponse
// @Router /exams [get]
// @Security BearerAuth
func (c *ExamController) ListExams(ctx *gin.Context) {
	var filter dto.ExamListFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid query parameters", Details: []string{err.Error()}})
		return
	}

	switch filter.GroupBy {
	case "timing":
		partition, err := c.listingService.PartitionByTiming(filter)
		if err != nil {
			controller.RespondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, partition)
	case "attempt":
		partition, err := c.listingService.PartitionByAttempt(filter, middleware.CallerID(ctx))
		if err != nil {
			controller.RespondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, partition)
	default:
		exams, err := c.listingService.ListExams(filter)
		if err != nil {
			controller.RespondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, exams)
	}
}

// GetExam godoc
// @Summary Get an exam to take it
// @Description Returns the exam with its questions; the answer key and explanations are stripped.
// @Tags Exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ExamDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{exam_id} [get]
// @Security BearerAuth
func (c *ExamController) GetExam(ctx *gin.Context) {
	examID, err := strconv.ParseUint(ctx.Param("exam_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam ID format"})
		return
	}
	detail, svcErr := c.examService.GetExamForTaking(uint(examID))
	if svcErr != nil {
		controller.RespondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// SubmitExam godoc
// @Summary Submit answers for an exam
// @Description Scores the answers and creates the caller's single Result for this exam. A second submission is rejected.
// @Tags Exams
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param submission body dto.SubmitExamRequest true "Answers and elapsed time"
// @Success 201 {object} dto.ResultResponse
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Already submitted"
// @Router /exams/{exam_id}/submissions [post]
// @Security BearerAuth
func (c *ExamController) SubmitExam(ctx *gin.Context) {
	examID, err := strconv.ParseUint(ctx.Param("exam_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam ID format"})
		return
	}

	var req dto.SubmitExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	userID := middleware.CallerID(ctx)
	log.Info().Uint64("examID", examID).Uint("userID", userID).Int("answerCount", len(req.Answers)).Msg("Received exam submission")

	result, svcErr := c.submissionService.SubmitExam(uint(examID), userID, req)
	if svcErr != nil {
		controller.RespondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// GetMyResults godoc
// @Summary Get the caller's results
// @Description Returns every result of the calling student with exam metadata and the full answer review.
// @Tags Exams
// @Produce json
// @Success 200 {array} dto.UserResultDTO
// @Router /my-results [get]
// @Security BearerAuth
func (c *ExamController) GetMyResults(ctx *gin.Context) {
	results, err := c.resultService.GetResultsForUser(middleware.CallerID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}
