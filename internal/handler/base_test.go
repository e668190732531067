package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkratz/pokedex-api/internal/errs"
	"github.com/tkratz/pokedex-api/internal/validation"
)

type echoRequest struct {
	Name string `json:"name" validate:"required"`
}

func (r *echoRequest) Validate() error {
	return validation.Struct(r)
}

type echoResponse struct {
	Greeting string `json:"greeting"`
}

func newTestContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleWritesJSONResponse(t *testing.T) {
	h := NewHandler(nil)

	fn := Handle(h, func(c echo.Context, req *echoRequest) (echoResponse, error) {
		return echoResponse{Greeting: "hello " + req.Name}, nil
	}, http.StatusOK)

	c, rec := newTestContext(`{"name": "Pidgey"}`)
	require.NoError(t, fn(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp echoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hello Pidgey", resp.Greeting)
}

func TestHandleReturnsValidationError(t *testing.T) {
	h := NewHandler(nil)

	called := false
	fn := Handle(h, func(c echo.Context, req *echoRequest) (echoResponse, error) {
		called = true
		return echoResponse{}, nil
	}, http.StatusOK)

	c, _ := newTestContext(`{}`)
	err := fn(c)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.False(t, called, "handler must not run when validation fails")
}

func TestHandlePropagatesHandlerError(t *testing.T) {
	h := NewHandler(nil)

	wantErr := errs.NewNotFoundError("Pokemon not found", true, nil)
	fn := Handle(h, func(c echo.Context, req *echoRequest) (echoResponse, error) {
		return echoResponse{}, wantErr
	}, http.StatusOK)

	c, _ := newTestContext(`{"name": "Mew"}`)
	err := fn(c)

	require.ErrorIs(t, err, wantErr)
}

func TestHandleAllocatesFreshRequestPerCall(t *testing.T) {
	h := NewHandler(nil)

	var seen []string
	fn := Handle(h, func(c echo.Context, req *echoRequest) (echoResponse, error) {
		seen = append(seen, req.Name)
		return echoResponse{}, nil
	}, http.StatusOK)

	c1, _ := newTestContext(`{"name": "Pidgey"}`)
	require.NoError(t, fn(c1))

	c2, _ := newTestContext(`{"name": "Charmander"}`)
	require.NoError(t, fn(c2))

	assert.Equal(t, []string{"Pidgey", "Charmander"}, seen)
}

func TestHandleNoContent(t *testing.T) {
	h := NewHandler(nil)

	fn := HandleNoContent(h, func(c echo.Context, req *echoRequest) error {
		return nil
	}, http.StatusNoContent)

	c, rec := newTestContext(`{"name": "Pidgey"}`)
	require.NoError(t, fn(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
