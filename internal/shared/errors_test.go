package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, StatusCode(KindUnauthenticated))
	assert.Equal(t, http.StatusForbidden, StatusCode(KindForbidden))
	assert.Equal(t, http.StatusNotFound, StatusCode(KindNotFound))
	assert.Equal(t, http.StatusConflict, StatusCode(KindConflict))
	assert.Equal(t, http.StatusBadRequest, StatusCode(KindInvalid))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(KindInternal))
}

func TestClientMessageHidesInternalDetail(t *testing.T) {
	internal := Wrap(KindInternal, "query failed", errors.New("pq: connection reset"))
	assert.Equal(t, "Internal server error", ClientMessage(internal))
	assert.Equal(t, "Internal server error", ClientMessage(errors.New("raw driver error")))

	tagged := E(KindConflict, "Role code already exists")
	assert.Equal(t, "Role code already exists", ClientMessage(tagged))
}

func TestKindOfUnwrapsNestedErrors(t *testing.T) {
	wrapped := fmt.Errorf("list roles: %w", ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("unclassified")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("timeout")
	err := Wrap(KindInternal, "load menus", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "load menus: timeout", err.Error())
}
