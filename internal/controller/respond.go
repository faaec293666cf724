package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hqdat/examhub/internal/apperr"
	"github.com/hqdat/examhub/internal/dto"
)

// RespondError maps an error's kind to its HTTP status and writes the wire
// error shape. Unknown errors are reported as 500 without leaking internals.
func RespondError(ctx *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperr.KindNotFound, apperr.KindNoMatchingData:
		status = http.StatusNotFound
	case apperr.KindAlreadySubmitted:
		status = http.StatusConflict
	case apperr.KindValidationFailed:
		status = http.StatusUnprocessableEntity
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
	}

	ctx.JSON(status, dto.ErrorResponse{Message: appErr.Message, Details: appErr.Fields})
}
