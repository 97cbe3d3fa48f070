package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"prodtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExportService struct {
	payload string
	err     error
}

func (s *stubExportService) WriteTargetsCSV(_ context.Context, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, s.payload)
	return err
}

func (s *stubExportService) WriteProductionCSV(_ context.Context, w io.Writer) error {
	return s.WriteTargetsCSV(nil, w)
}

var _ service.ExportService = (*stubExportService)(nil)

func getExport(t *testing.T, svc service.ExportService, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(svc)
	r := gin.New()
	r.GET("/export/targets", h.Targets)
	r.GET("/export/daily", h.Daily)

	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExportTargetsSuccess(t *testing.T) {
	svc := &stubExportService{payload: "username,week_start_date\njohndoe,2024-03-18\n"}

	w := getExport(t, svc, "/export/targets")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "weekly_targets.csv")
	assert.Equal(t, svc.payload, w.Body.String())
}

func TestExportFailureIsCleanJSONError(t *testing.T) {
	// A failing export must not leave a partial CSV with a JSON error
	// appended — the response is a plain 500 and never an attachment.
	svc := &stubExportService{err: errors.New("db gone")}

	w := getExport(t, svc, "/export/daily")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"detail":"export failed"}`, w.Body.String())
}
