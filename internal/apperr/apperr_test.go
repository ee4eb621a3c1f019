package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, KindUnauthenticated.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, KindValidation.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, KindInvalidArgument.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.HTTPStatus())
}

func TestAsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create expense: %w", NotFound("User", 7))

	e := As(err)
	if assert.NotNil(t, e) {
		assert.Equal(t, "User with id 7 not found", e.Message)
	}
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestValidationKeepsOrder(t *testing.T) {
	e := Validation("first", "second")
	assert.Equal(t, []string{"first", "second"}, e.Details)
	assert.Equal(t, "first; second", e.Message)
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("disk on fire")
	e := Internal(cause)
	assert.Equal(t, "Internal server error", e.Message)
	assert.ErrorIs(t, e, cause)
}
