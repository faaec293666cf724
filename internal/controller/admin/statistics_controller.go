package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hqdat/examhub/internal/controller"
	"github.com/hqdat/examhub/internal/dto"
	"github.com/hqdat/examhub/internal/service"
)

type StatisticsController struct {
	statisticsService service.StatisticsService
}

func NewStatisticsController(statisticsService service.StatisticsService) *StatisticsController {
	return &StatisticsController{statisticsService: statisticsService}
}

// GetDashboard godoc
// @Summary (Admin) Overview of users, exams and per-exam statistics
// @Tags Admin - Statistics
// @Produce json
// @Success 200 {object} dto.DashboardDTO
// @Router /admin/dashboard [get]
// @Security BearerAuth
func (c *StatisticsController) GetDashboard(ctx *gin.Context) {
	resp, err := c.statisticsService.Dashboard()
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetStatistics godoc
// @Summary (Admin) Per-student statistics
// @Description Unfiltered, every student appears even with zero results. With a filter, only students with at least one matching result are listed; no matches at all is a 404.
// @Tags Admin - Statistics
// @Produce json
// @Param exam_title query string false "Exam title substring, case-insensitive"
// @Param date query string false "Calendar day (YYYY-MM-DD) the exam window must fall in"
// @Success 200 {array} dto.UserStatisticsDTO
// @Failure 404 {object} dto.ErrorResponse "No results match the given filter"
// @Router /admin/statistics [get]
// @Security BearerAuth
func (c *StatisticsController) GetStatistics(ctx *gin.Context) {
	var filter dto.StatisticsFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid query parameters", Details: []string{err.Error()}})
		return
	}
	resp, err := c.statisticsService.UserStatistics(filter)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetStudentDetail godoc
// @Summary (Admin) Full result history per matching student
// @Description Answers are labeled as the student's own choice; the answer key is not included in this view.
// @Tags Admin - Statistics
// @Produce json
// @Param full_name query string false "Full-name substring, case-insensitive"
// @Param student_id query string false "Exact student id"
// @Success 200 {array} dto.StudentDetailDTO
// @Router /admin/results [get]
// @Security BearerAuth
func (c *StatisticsController) GetStudentDetail(ctx *gin.Context) {
	var filter dto.StudentDetailFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Invalid query parameters", Details: []string{err.Error()}})
		return
	}
	resp, err := c.statisticsService.StudentDetail(filter)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
