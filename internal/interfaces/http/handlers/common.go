// Package handlers holds the HTTP handlers of the analysis API.
package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/bgc-scaffold/internal/interfaces/http/middleware"
	"github.com/turtacn/bgc-scaffold/pkg/errors"
	"github.com/turtacn/bgc-scaffold/pkg/types/common"
)

// writeData writes a successful envelope.
func writeData[T any](c *gin.Context, status int, data T) {
	resp := common.NewSuccessResponse(data)
	resp.RequestID = middleware.GetRequestID(c)
	c.JSON(status, resp)
}

// writeAppError maps err to its HTTP status and writes an error envelope.
// Errors outside the AppError family are masked.
func writeAppError(c *gin.Context, err error) {
	_ = c.Error(err)

	var mbe *http.MaxBytesError
	if stderrors.As(err, &mbe) {
		writeErrorBody(c, http.StatusRequestEntityTooLarge, &common.ErrorDetail{
			Code:    string(errors.ErrCodeBadRequest),
			Message: "request body too large",
		})
		return
	}

	var ae *errors.AppError
	if !stderrors.As(err, &ae) {
		writeErrorBody(c, http.StatusInternalServerError, &common.ErrorDetail{
			Code:    string(errors.ErrCodeInternal),
			Message: errors.DefaultMessageForCode(errors.ErrCodeInternal),
		})
		return
	}
	writeErrorBody(c, errors.HTTPStatusForCode(ae.Code), &common.ErrorDetail{
		Code:    string(ae.Code),
		Message: ae.Message,
		Detail:  ae.Detail,
	})
}

func writeErrorBody(c *gin.Context, status int, detail *common.ErrorDetail) {
	resp := common.NewErrorResponse(detail)
	resp.RequestID = middleware.GetRequestID(c)
	c.AbortWithStatusJSON(status, resp)
}

//Personal.AI order the ending
