package paste

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xbt573/pastebin/internal/models"
	pasteService "github.com/xbt573/pastebin/internal/service/paste"
	"github.com/xbt573/pastebin/internal/views"
)

type fakeService struct {
	pastes  map[string]models.Paste
	created []string
	err     error
}

func (f *fakeService) Create(_ context.Context, content string) (models.Paste, error) {
	if len(content) <= 1 {
		return models.Paste{}, pasteService.ErrInvalidRequest
	}
	if f.err != nil {
		return models.Paste{}, f.err
	}

	p := models.Paste{ID: "AbCdEfGhIjKlMnOpQrSt", Content: content}
	f.created = append(f.created, content)
	f.pastes[p.ID] = p

	return p, nil
}

func (f *fakeService) Get(_ context.Context, id string) (models.Paste, error) {
	if f.err != nil {
		return models.Paste{}, f.err
	}

	p, ok := f.pastes[id]
	if !ok {
		return models.Paste{}, pasteService.ErrNotFound
	}

	return p, nil
}

func newFakeService() *fakeService {
	return &fakeService{pastes: make(map[string]models.Paste)}
}

func newTestApp(t *testing.T, svc pasteService.Service, staticDir string, engine fiber.Views) *fiber.App {
	t.Helper()

	if engine == nil {
		engine = views.New()
	}

	c := New(svc, Options{StaticDir: staticDir})

	f := fiber.New(fiber.Config{Views: engine})
	f.Get("/", c.Index)
	f.Post("/upload", c.Upload)
	f.Get("/:id", c.Get)
	f.Use(c.Static)

	return f
}

func do(t *testing.T, f *fiber.App, req *http.Request) (int, string) {
	t.Helper()

	resp, err := f.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func newUploadRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestIndex(t *testing.T) {
	f := newTestApp(t, newFakeService(), t.TempDir(), nil)

	status, body := do(t, f, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `id="upload"`)
	assert.Contains(t, body, "<title>pastebin</title>")
}

func TestIndex_RenderFailure(t *testing.T) {
	broken := html.NewFileSystem(http.FS(fstest.MapFS{}), ".html")
	f := newTestApp(t, newFakeService(), t.TempDir(), broken)

	status, body := do(t, f, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, renderFallback, body)
}

func TestUpload(t *testing.T) {
	svc := newFakeService()
	f := newTestApp(t, svc, t.TempDir(), nil)

	resp, err := f.Test(newUploadRequest(`{"content":"hello world"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, map[string]string{"id": "AbCdEfGhIjKlMnOpQrSt"}, payload)
	assert.Equal(t, []string{"hello world"}, svc.created)
}

func TestUpload_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"single char", `{"content":"x"}`},
		{"empty", `{"content":""}`},
		{"missing field", `{}`},
		{"malformed json", `{"content":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newFakeService()
			f := newTestApp(t, svc, t.TempDir(), nil)

			status, _ := do(t, f, newUploadRequest(tc.body))
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Empty(t, svc.created)
		})
	}
}

func TestUpload_StorageError(t *testing.T) {
	svc := newFakeService()
	svc.err = errors.New("connection refused")
	f := newTestApp(t, svc, t.TempDir(), nil)

	status, _ := do(t, f, newUploadRequest(`{"content":"hello world"}`))
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestGet(t *testing.T) {
	svc := newFakeService()
	svc.pastes["abc"] = models.Paste{ID: "abc", Content: "hello world"}
	f := newTestApp(t, svc, t.TempDir(), nil)

	status, body := do(t, f, httptest.NewRequest(http.MethodGet, "/abc", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "hello world")
}

func TestGet_EscapesContent(t *testing.T) {
	svc := newFakeService()
	svc.pastes["abc"] = models.Paste{ID: "abc", Content: "<script>alert(1)</script>"}
	f := newTestApp(t, svc, t.TempDir(), nil)

	status, body := do(t, f, httptest.NewRequest(http.MethodGet, "/abc", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestGet_NotFound(t *testing.T) {
	f := newTestApp(t, newFakeService(), t.TempDir(), nil)

	status, body := do(t, f, httptest.NewRequest(http.MethodGet, "/doesnotexist", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Paste not found")
}

func TestGet_StorageError(t *testing.T) {
	svc := newFakeService()
	svc.err = errors.New("read failed")
	f := newTestApp(t, svc, t.TempDir(), nil)

	status, _ := do(t, f, httptest.NewRequest(http.MethodGet, "/abc", nil))
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	f := newTestApp(t, newFakeService(), dir, nil)

	status, body := do(t, f, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "console.log(1)", body)
}

func TestStatic_Missing(t *testing.T) {
	dir := t.TempDir()
	f := newTestApp(t, newFakeService(), dir, nil)

	status, body := do(t, f, httptest.NewRequest(http.MethodGet, "/assets/missing.js", nil))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.True(t, strings.HasPrefix(body, "Failed to serve files: "), body)
	assert.Contains(t, body, "/assets/missing.js")
	assert.NotContains(t, body, dir)
}

func TestStatic_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets", "js"), 0o755))

	f := newTestApp(t, newFakeService(), dir, nil)

	status, body := do(t, f, httptest.NewRequest(http.MethodGet, "/assets/js", nil))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to serve files: /assets/js: is a directory", body)
}

func TestStatic_MethodNotAllowed(t *testing.T) {
	f := newTestApp(t, newFakeService(), t.TempDir(), nil)

	status, _ := do(t, f, httptest.NewRequest(http.MethodPost, "/assets/app.js", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}
