package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fascinar/eventos-api/internal/repository"
	"github.com/fascinar/eventos-api/internal/service"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestServiceError_KnownKinds(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, serviceError(c, service.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newTestContext(t)
	require.NoError(t, serviceError(c, service.ErrAlreadyScheduled))
	assert.Equal(t, http.StatusConflict, rec.Code)

	c, rec = newTestContext(t)
	require.NoError(t, serviceError(c, service.ErrNoCandidates))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServiceError_SetupRemediationSurfaced(t *testing.T) {
	cause := repository.ClassifyStoreError(&mysql.MySQLError{
		Number:  1146,
		Message: "Table 'eventos.staff_availability' doesn't exist",
	})
	err := &service.StoreError{Op: "load availability", Err: cause}

	c, rec := newTestContext(t)
	require.NoError(t, serviceError(c, err))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "eventosctl migrate")
	assert.NotContains(t, rec.Body.String(), "internal error")
}

func TestServiceError_PlainStoreFailureStaysGeneric(t *testing.T) {
	err := &service.StoreError{Op: "load availability", Err: assert.AnError}

	c, rec := newTestContext(t)
	require.NoError(t, serviceError(c, err))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
