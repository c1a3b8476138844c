package compare

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"feature-diff/core/diff"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	app := fiber.New()
	svc := NewService(nil, nil, "", testConfig(), 10, zap.NewNop())
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func postCompare(t *testing.T, app *fiber.App, req Request) (int, map[string]any) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest("POST", "/compare", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(httpReq)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleCompare(t *testing.T) {
	app := setupTestApp(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.geojson", geoA)
	b := writeFile(t, dir, "b.geojson", geoB)

	status, body := postCompare(t, app, Request{
		SourceA: "file:" + a,
		SourceB: "file:" + b,
		KeyA:    "CODE",
		Fields:  []diff.FieldMap{{Output: "V", SourceA: "V", SourceB: "V"}},
		Output:  "file:" + filepath.Join(dir, "diff.jsonl"),
	})
	require.Equal(t, 200, status)
	assert.Equal(t, "completed", body["status"])

	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(3), summary["emitted"])

	id := body["id"].(string)
	resp, err := app.Test(httptest.NewRequest("GET", "/compare/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/compare", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var runs []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	assert.Len(t, runs, 1)
}

func TestHandleCompare_BadRequest(t *testing.T) {
	app := setupTestApp(t)

	status, body := postCompare(t, app, Request{SourceA: "db:a", SourceB: "db:b"})
	assert.Equal(t, 400, status)
	assert.Contains(t, body["error"], "key field")

	req := httptest.NewRequest("POST", "/compare", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleCompare_SourceError(t *testing.T) {
	app := setupTestApp(t)
	dir := t.TempDir()

	status, body := postCompare(t, app, Request{
		SourceA: "file:" + filepath.Join(dir, "missing.geojson"),
		SourceB: "file:" + filepath.Join(dir, "missing2.geojson"),
		KeyA:    "CODE",
		Output:  "file:" + filepath.Join(dir, "diff.jsonl"),
	})
	assert.Equal(t, 500, status)
	assert.NotEmpty(t, body["error"])
	run := body["run"].(map[string]any)
	assert.Equal(t, "failed", run["status"])
}

func TestHandleGetRun_NotFound(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/compare/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 400, statusFor(diff.ErrConfiguration))
	assert.Equal(t, 400, statusFor(diff.ErrKeyTypeMismatch))
	assert.Equal(t, 500, statusFor(diff.ErrSourceRead))
	assert.Equal(t, 500, statusFor(diff.ErrOutputWrite))
}
