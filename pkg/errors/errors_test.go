package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *StandardError
		want int
	}{
		{NewInvalidRequest("bad json", ""), http.StatusBadRequest},
		{NewValidationError("is required", "product_name"), http.StatusBadRequest},
		{NewUnauthorized("missing token", ""), http.StatusUnauthorized},
		{NewRecordNotFound("111"), http.StatusNotFound},
		{NewConfirmationRequired("111", 0), http.StatusConflict},
		{NewStorageUnavailable("set", errors.New("disk full")), http.StatusServiceUnavailable},
		{NewInternalError("boom", nil), http.StatusInternalServerError},
		{NewStandardError("SomethingElse", "", ""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestStandardError_Details(t *testing.T) {
	err := NewValidationError("must be at least 1", "quantity")

	assert.Equal(t, "must be at least 1", err.Error())
	assert.Equal(t, "Field: quantity", err.Details)
	assert.Equal(t, "", NewInternalError("boom", nil).Details)
}
