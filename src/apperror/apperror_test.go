package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Capacity("Form is closed"), http.StatusBadRequest},
		{Authentication("no"), http.StatusUnauthorized},
		{Authorization("Permission denied"), http.StatusForbidden},
		{NotFound("Form not found"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{Upstream("mongo", errors.New("down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("submissions.Create: %w", Conflict("This email has already been used for this form"))
	assert.True(t, Is(err, KindConflict))
	assert.False(t, Is(err, KindNotFound))
	assert.False(t, Is(nil, KindInternal))
}

func TestUpstreamUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Upstream("failed to save submission", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save submission: connection reset", err.Error())
}
