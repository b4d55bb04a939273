package v1

import (
	"errors"
	"net/http"

	"github.com/callsoso/callsoso/middleware"
	"github.com/callsoso/callsoso/services"
	"github.com/callsoso/callsoso/utils"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error onto the HTTP error envelope
func respondServiceError(c *gin.Context, message string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondValidation(c, verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, services.ErrDuplicateMatch):
		utils.RespondError(c, http.StatusConflict, message, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondError(c, http.StatusUnauthorized, message, err)
	case errors.Is(err, services.ErrDeliveryFailed):
		utils.RespondError(c, http.StatusBadGateway, message, err)
	default:
		_ = c.Error(err)
		utils.RespondError(c, http.StatusInternalServerError, message, nil)
	}
}

// bindForm binds a JSON or form body, answering 400 on failure
func bindForm(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		utils.RespondValidation(c, utils.FieldErrors(err))
		return false
	}
	return true
}

// currentUser returns the authenticated user id, answering 401 when absent
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "User not authenticated", nil)
	}
	return id, ok
}
