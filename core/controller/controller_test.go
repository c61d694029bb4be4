package controller

import (
	"net/http"
	"testing"

	"team-scheduler-api/core/errors"
)

func TestStatusForErrorCode(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want int
	}{
		{errors.ErrInvalidInput, http.StatusBadRequest},
		{errors.ErrUnauthorized, http.StatusUnauthorized},
		{errors.ErrIncompleteParticipants, http.StatusForbidden},
		{errors.ErrProviderUnavailable, http.StatusBadGateway},
		{errors.ErrBookingPersistence, http.StatusInternalServerError},
		{errors.ErrNotFound, http.StatusNotFound},
		{errors.ErrAlreadyExists, http.StatusConflict},
		{errors.ErrInternalServer, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusForErrorCode(tt.code); got != tt.want {
			t.Errorf("StatusForErrorCode(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
