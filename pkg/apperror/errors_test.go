package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("ship part 7: %w", Validation("insufficient inventory"))

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "ship part 7: insufficient inventory", err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(KindIntegrity, cause, "order number %s already exists", "PO2026100001")

	assert.True(t, IsIntegrity(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "order number PO2026100001 already exists: duplicate key", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[error]int{
		Validation("bad"):          http.StatusBadRequest,
		NotFound("missing"):        http.StatusNotFound,
		State("illegal"):           http.StatusConflict,
		Integrity("dup"):           http.StatusConflict,
		errors.New("disk on fire"): http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, HTTPStatus(err), err.Error())
	}
}
