package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkratz/pokedex-api/internal/errs"
)

type createRequest struct {
	ID   int32   `json:"id" validate:"required,min=1"`
	Name string  `json:"name" validate:"required"`
	Type []int32 `json:"type" validate:"dive,min=1"`
}

func (r *createRequest) Validate() error {
	return Struct(r)
}

type paramRequest struct {
	ID int32 `param:"id" validate:"required,min=1"`
}

func (r *paramRequest) Validate() error {
	return Struct(r)
}

func newJSONContext(t *testing.T, body string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/db/pokemon", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := newJSONContext(t, `{"id": 7, "name": "Squirtle", "type": [11]}`)

	payload := &createRequest{}
	require.NoError(t, BindAndValidate(c, payload))

	assert.Equal(t, int32(7), payload.ID)
	assert.Equal(t, "Squirtle", payload.Name)
	assert.Equal(t, []int32{11}, payload.Type)
}

func TestBindAndValidateMissingRequiredField(t *testing.T) {
	c := newJSONContext(t, `{"id": 7}`)

	err := BindAndValidate(c, &createRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.NotEmpty(t, httpErr.Errors)

	fields := make([]string, 0, len(httpErr.Errors))
	for _, fe := range httpErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "name")
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	c := newJSONContext(t, `{"id": `)

	err := BindAndValidate(c, &createRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBindAndValidatePathParam(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("25")

	payload := &paramRequest{}
	require.NoError(t, BindAndValidate(c, payload))
	assert.Equal(t, int32(25), payload.ID)
}

func TestBindAndValidatePathParamInvalid(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("0")

	err := BindAndValidate(c, &paramRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestCustomValidationErrors(t *testing.T) {
	customErrs := CustomValidationErrors{
		{Field: "type", Message: "unknown type id"},
	}
	assert.Equal(t, "Validation failed", customErrs.Error())
}
