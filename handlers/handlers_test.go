package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"sopwriter/models"
	"sopwriter/services/archive"
	"sopwriter/services/export"
	"sopwriter/services/sop"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSOPService struct {
	gotProfile models.UserProfile
	result     *sop.GenerateResult
	err        error
	records    map[string]*models.ArchiveRecord
}

func (s *stubSOPService) Generate(_ context.Context, p models.UserProfile) (*sop.GenerateResult, error) {
	s.gotProfile = p
	return s.result, s.err
}

func (s *stubSOPService) Archived(_ context.Context, id string) (*models.ArchiveRecord, error) {
	if rec, ok := s.records[id]; ok {
		return rec, nil
	}
	return nil, archive.ErrNotFound
}

type stubChecker struct{ status models.ModelStatus }

func (s stubChecker) Check(context.Context) models.ModelStatus { return s.status }

func newTestRouter(svc sop.SOPService, checker ModelChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	sh := NewSOPHandler(svc)
	mh := NewModelHandler(checker)
	dh := NewDownloadHandler(export.Exporters())

	r.POST("/api/generate", sh.GenerateSOPHandler)
	r.GET("/api/sop/:id", sh.GetArchivedSOPHandler)
	r.GET("/api/check-model", mh.CheckModelHandler)
	r.POST("/api/download/:format", func(c *gin.Context) { dh.Download(c.Param("format"))(c) })
	return r
}

func completeForm() url.Values {
	form := url.Values{}
	for _, key := range models.ProfileFields {
		form.Set(key, "value of "+key)
	}
	form.Set(models.FieldName, "Jane Doe")
	return form
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGenerateSOPHandlerSuccess(t *testing.T) {
	svc := &stubSOPService{result: &sop.GenerateResult{
		Content:           "Introduction\n\nHello.",
		GenerationSeconds: 12.34,
		ArchiveID:         "abc",
	}}
	r := newTestRouter(svc, stubChecker{})

	w := postForm(r, "/api/generate", completeForm())
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Introduction\n\nHello.", body["sop"])
	assert.Equal(t, 12.34, body["generation_time"])
	assert.Equal(t, "abc", body["archive_id"])

	assert.Equal(t, "Jane Doe", svc.gotProfile.Get(models.FieldName))
	assert.Equal(t, "value of family_ties", svc.gotProfile.Get(models.FieldFamilyTies))
}

func TestGenerateSOPHandlerOmitsEmptyArchiveID(t *testing.T) {
	svc := &stubSOPService{result: &sop.GenerateResult{Content: "x"}}
	r := newTestRouter(svc, stubChecker{})

	w := postForm(r, "/api/generate", completeForm())
	require.Equal(t, http.StatusOK, w.Code)
	_, present := decodeBody(t, w)["archive_id"]
	assert.False(t, present)
}

func TestGenerateSOPHandlerMissingFields(t *testing.T) {
	svc := &stubSOPService{}
	r := newTestRouter(svc, stubChecker{})

	form := completeForm()
	form.Del(models.FieldCountryOfOrigin)
	form.Set(models.FieldGPA, "")

	w := postForm(r, "/api/generate", form)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing required fields: country_of_origin, gpa", body["error"])
	assert.Nil(t, svc.gotProfile, "service must not run")
}

func TestGenerateSOPHandlerGenerationFailure(t *testing.T) {
	svc := &stubSOPService{err: &sop.SectionError{
		Index: 2,
		Key:   "language_proficiency",
		Err:   errors.New("Ollama API returned status code 500"),
	}}
	r := newTestRouter(svc, stubChecker{})

	w := postForm(r, "/api/generate", completeForm())
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "failed to generate language_proficiency: Ollama API returned status code 500", body["error"])
	assert.NotContains(t, body, "sop")
}

func TestCheckModelHandlerAlwaysOK(t *testing.T) {
	r := newTestRouter(&stubSOPService{}, stubChecker{
		status: models.ModelUnavailable("Model llama3.1:8b not found. Available models: mistral"),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/check-model", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"success":false,"model":null,"error":"Model llama3.1:8b not found. Available models: mistral"}`,
		w.Body.String())
}

func TestCheckModelHandlerAvailable(t *testing.T) {
	r := newTestRouter(&stubSOPService{}, stubChecker{status: models.ModelAvailable("llama3.1:8b")})

	req := httptest.NewRequest(http.MethodGet, "/api/check-model", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"model":"llama3.1:8b","error":null}`, w.Body.String())
}

func TestDownloadTXT(t *testing.T) {
	r := newTestRouter(&stubSOPService{}, stubChecker{})
	content := "Introduction\n\nHello there."

	w := postForm(r, "/api/download/txt", url.Values{"sop_content": {content}, "name": {"Jane Doe"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="SOP_Jane_Doe.txt"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Equal(t, content, w.Body.String())
}

func TestDownloadDefaultsName(t *testing.T) {
	r := newTestRouter(&stubSOPService{}, stubChecker{})

	w := postForm(r, "/api/download/pdf", url.Values{"sop_content": {"H\n\nB"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="SOP_User.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestDownloadDOCX(t *testing.T) {
	r := newTestRouter(&stubSOPService{}, stubChecker{})

	w := postForm(r, "/api/download/docx", url.Values{"sop_content": {"H\n\nB"}, "name": {"Ann"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="SOP_Ann.docx"`, w.Header().Get("Content-Disposition"))
	// Zip local file header.
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestDownloadUnknownFormat(t *testing.T) {
	r := newTestRouter(&stubSOPService{}, stubChecker{})

	w := postForm(r, "/api/download/rtf", url.Values{"sop_content": {"x"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArchivedSOPHandler(t *testing.T) {
	svc := &stubSOPService{records: map[string]*models.ArchiveRecord{
		"known": {ID: "known", Name: "Jane Doe", Content: "Introduction\n\nHi."},
	}}
	r := newTestRouter(svc, stubChecker{})

	req := httptest.NewRequest(http.MethodGet, "/api/sop/known", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	rec, ok := body["record"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", rec["name"])

	req = httptest.NewRequest(http.MethodGet, "/api/sop/missing", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
