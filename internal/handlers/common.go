// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AndrewLicona/ShopyLink-sub001/internal/apperrors"
	"github.com/AndrewLicona/ShopyLink-sub001/internal/utils"
)

// currentUserID extracts the authenticated user's id set by the auth
// middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// handleServiceError maps the service error taxonomy onto HTTP responses.
func handleServiceError(c *gin.Context, err error) {
	if stockErr, ok := apperrors.AsInsufficientStock(err); ok {
		utils.InsufficientStockResponse(c, stockErr.ProductName)
		return
	}

	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		utils.NotFoundResponse(c, notFound.Resource)
		return
	}

	if apperrors.IsValidation(err) {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	if apperrors.IsConflict(err) {
		utils.ConflictResponse(c, err.Error())
		return
	}

	logrus.WithError(err).Error("Unhandled service error")
	utils.InternalErrorResponse(c, "")
}
