package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "GATEWAY_TIMEOUT", MakeUpperCaseWithUnderscores("Gateway Timeout"))
	assert.Equal(t, "OK", MakeUpperCaseWithUnderscores("OK"))
}

func TestConstructorStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("Pokemon not found", true, nil).Status)
	assert.Equal(t, http.StatusBadRequest, NewBadRequestError("nope", false, nil, nil, nil).Status)
	assert.Equal(t, http.StatusConflict, NewConflictError("already there", false, nil).Status)
	assert.Equal(t, http.StatusTooManyRequests, NewTooManyRequestsError("slow down").Status)
	assert.Equal(t, http.StatusGatewayTimeout, NewGatewayTimeoutError("too slow").Status)
	assert.Equal(t, http.StatusInternalServerError, NewInternalServerError().Status)
}

func TestInternalServerErrorHidesDetails(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), err.Message)
	assert.False(t, err.Override)
}

func TestWithMessageCopies(t *testing.T) {
	original := NewNotFoundError("Pokemon not found", true, nil)
	modified := original.WithMessage("Type not found")

	assert.Equal(t, "Pokemon not found", original.Message)
	assert.Equal(t, "Type not found", modified.Message)
	assert.Equal(t, original.Code, modified.Code)
	assert.Equal(t, original.Status, modified.Status)
}
