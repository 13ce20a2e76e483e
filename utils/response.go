package utils

import (
	"errors"
	"net/http"
	"strconv"

	"burger-shop/models"

	"github.com/gin-gonic/gin"
)

func RespondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.Response{Success: true, Message: message, Data: data})
}

func RespondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, models.Response{Success: true, Message: message, Data: data})
}

func RespondBadRequest(c *gin.Context, message string, err error) {
	resp := models.ErrorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// RespondError maps the error taxonomy to a status code. Internal failures never leak their cause.
func RespondError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	resp := models.ErrorResponse{Success: false, Message: message}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		resp.Error = verr.Error()
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, resp)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, models.ErrEmptyCart):
		return http.StatusConflict, "Cart is empty"
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, models.ErrEmailTaken):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, models.ErrTransaction):
		return http.StatusInternalServerError, "Could not complete the request, please retry"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func ParamInt(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		return 0, models.NewValidationError(name, "must be a positive integer")
	}
	return v, nil
}

// Context keys set by the auth middleware.
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

// CurrentUserID is zero on routes without the auth middleware.
func CurrentUserID(c *gin.Context) int {
	return c.GetInt(ContextUserID)
}
