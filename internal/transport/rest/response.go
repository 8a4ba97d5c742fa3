package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"docslot/internal/domain"
)

type errorResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Code    int         `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type messageResponseType struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type overlapDetails struct {
	RuleID    int64  `json:"rule_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

func messageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, messageResponseType{
		Status:  "success",
		Message: message,
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, "требуется авторизация")
}

func forbiddenResponse(c *gin.Context, message ...string) {
	msg := "доступ запрещен"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	errorResponse(c, http.StatusForbidden, msg)
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusNotFound, message)
}

// serviceErrorResponse maps domain errors to statuses. Anything unknown is
// logged and reported as fallback with 500.
func (h *Handler) serviceErrorResponse(c *gin.Context, err error, fallback string) {
	var overlap *domain.OverlapError

	switch {
	case errors.As(err, &overlap):
		c.AbortWithStatusJSON(http.StatusConflict, errorResponseBody{
			Status:  "error",
			Message: err.Error(),
			Code:    http.StatusConflict,
			Details: overlapDetails{RuleID: overlap.RuleID, StartTime: overlap.StartTime, EndTime: overlap.EndTime},
		})
	case errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrOutOfBounds),
		errors.Is(err, domain.ErrInvalidSlot):
		badRequestResponse(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		notFoundResponse(c, err.Error())
	case errors.Is(err, domain.ErrDuplicateBooking), errors.Is(err, domain.ErrSlotFull):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		forbiddenResponse(c)
	default:
		h.logger.Error(fallback, zap.String("request_id", c.GetString(requestIDCtx)), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, fallback)
	}
}

// bindingErrorMessage lists the failed fields of a rejected request body.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "неверный формат данных"
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return "неверные поля: " + strings.Join(fields, ", ")
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequestResponse(c, "неверный формат ID")
		return 0, false
	}
	return id, true
}
