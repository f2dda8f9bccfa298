package handlers

import (
	"errors"

	"frigo-service/internal/domain"
	apperrors "frigo-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// toStandardError maps domain errors onto API errors
func toStandardError(err error) *apperrors.StandardError {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		storageErr    *domain.StorageError
		stdErr        *apperrors.StandardError
	)

	switch {
	case errors.As(err, &stdErr):
		return stdErr
	case errors.As(err, &validationErr):
		return apperrors.NewValidationError(validationErr.Error(), validationErr.Field)
	case errors.As(err, &notFoundErr):
		return apperrors.NewRecordNotFound(notFoundErr.ID)
	case errors.As(err, &storageErr):
		return apperrors.NewStorageUnavailable(storageErr.Op, storageErr.Err)
	default:
		return apperrors.NewInternalError("internal server error", err)
	}
}

func abortWithError(c *gin.Context, err error) {
	c.Error(toStandardError(err))
	c.Abort()
}
