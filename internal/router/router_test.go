package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/database"
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/handler"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/service"
	"kanban-board-api/internal/session"
)

const (
	testPassword = "let-me-in"
	testCookie   = "kanban_session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	registry *prometheus.Registry
	mirror   *client.MockMirror
}

// setupTestRouter creates a router backed by an in-memory SQLite database
// and a memory session store.
func setupTestRouter(t *testing.T, withMirror bool) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to connect database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.NewWithRegistry(registry, zap.NewNop())

	env := &testEnv{db: db, registry: registry}
	cfg := Config{
		DB:       db,
		Logger:   zap.NewNop(),
		Metrics:  m,
		Gatherer: registry,
		Sessions: session.NewManager(session.NewMemoryStore(), "test-secret", 24*time.Hour),
		Password: testPassword,
		Cookie:   handler.CookieOptions{Name: testCookie, TTL: 24 * time.Hour},
		Upload: service.UploadConfig{
			StagingDir:    t.TempDir(),
			MaxSize:       1 << 20,
			MirrorTimeout: 5 * time.Second,
		},
	}
	if withMirror {
		env.mirror = client.NewMockMirror()
		cfg.Mirror = env.mirror
	}
	env.router = Setup(cfg)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/login", map[string]string{"password": testPassword}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file here"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestMetricsEndpoint_NoAuthentication(t *testing.T) {
	env := setupTestRouter(t, false)

	w := env.do(t, http.MethodGet, "/metrics", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code, "Metrics endpoint should be accessible without authentication")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	body := w.Body.String()
	assert.Contains(t, body, "# HELP")
	assert.Contains(t, body, "# TYPE")
	assert.Contains(t, body, "go_goroutines")
	assert.Contains(t, body, "kanban_db_connections_open")
}

func TestMetricsEndpoint_RecordsRoutePattern(t *testing.T) {
	env := setupTestRouter(t, false)
	cookie := env.login(t)

	env.do(t, http.MethodGet, "/api/cards/ops", nil, cookie)
	env.do(t, http.MethodGet, "/api/cards/dev", nil, cookie)

	body := env.do(t, http.MethodGet, "/metrics", nil, nil).Body.String()
	assert.Contains(t, body, `endpoint="/api/cards/:board"`)
	assert.NotContains(t, body, `endpoint="/api/cards/ops"`)
	assert.NotContains(t, body, `endpoint="/metrics"`)
}

func TestHealth(t *testing.T) {
	env := setupTestRouter(t, false)

	w := env.do(t, http.MethodGet, "/health", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "connected", resp["database"])
	assert.Equal(t, "not configured", resp["gdrive"])
	assert.Equal(t, "memory", resp["sessions"])
}

func TestProtectedRoutes_RequireSession(t *testing.T) {
	env := setupTestRouter(t, false)

	routes := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/api/cards/ops", nil},
		{http.MethodPost, "/api/cards", map[string]string{"board": "ops", "column_name": "todo", "title": "A"}},
		{http.MethodPut, "/api/cards/1", map[string]string{"title": "B"}},
		{http.MethodDelete, "/api/cards/1", nil},
		{http.MethodGet, "/api/boards", nil},
		{http.MethodGet, "/api/uploads", nil},
		{http.MethodPost, "/api/upload", nil},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := env.do(t, rt.method, rt.path, rt.body, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized","code":"UNAUTHORIZED"}`, w.Body.String())
		})
	}

	forged := &http.Cookie{Name: testCookie, Value: "not-a-token"}
	w := env.do(t, http.MethodGet, "/api/boards", nil, forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&domain.Card{}).Count(&count).Error)
	assert.Zero(t, count, "rejected requests must not mutate the store")
}

func TestAuthFlow(t *testing.T) {
	env := setupTestRouter(t, false)

	w := env.do(t, http.MethodGet, "/api/auth-status", nil, nil)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/login", map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid password")

	cookie := env.login(t)
	assert.True(t, cookie.HttpOnly)

	w = env.do(t, http.MethodGet, "/api/auth-status", nil, cookie)
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/auth-status", nil, cookie)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/boards", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "a revoked token must not authorize requests")
}

func TestCards_CreateListMove(t *testing.T) {
	env := setupTestRouter(t, false)
	cookie := env.login(t)

	var a, b domain.Card
	w := env.do(t, http.MethodPost, "/api/cards", map[string]string{"board": "ops", "column_name": "todo", "title": "A"}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	assert.Equal(t, 1, a.Position)

	w = env.do(t, http.MethodPost, "/api/cards", map[string]string{"board": "ops", "column_name": "todo", "title": "B"}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, 2, b.Position)

	var cards []domain.Card
	w = env.do(t, http.MethodGet, "/api/cards/ops", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "A", cards[0].Title)
	assert.Equal(t, "B", cards[1].Title)

	w = env.do(t, http.MethodPut, "/api/cards/"+strconv.FormatInt(b.ID, 10), map[string]interface{}{"column_name": "done", "position": 1, "title": "B"}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/cards/ops", nil, cookie)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 2)
	for _, c := range cards {
		if c.ID == b.ID {
			assert.Equal(t, "done", c.ColumnName)
			assert.Equal(t, 1, c.Position)
			assert.Equal(t, "B", c.Title)
		}
	}

	w = env.do(t, http.MethodGet, "/api/boards", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"board":"ops","cards":2}]`, w.Body.String())

	w = env.do(t, http.MethodPut, "/api/cards/9999", map[string]string{"column_name": "todo", "title": "ghost"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))

	w = env.do(t, http.MethodPut, "/api/cards/"+strconv.FormatInt(b.ID, 10), map[string]interface{}{"column_name": "done", "position": 1}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code, "an update without a title is rejected")

	w = env.do(t, http.MethodDelete, "/api/cards/"+strconv.FormatInt(a.ID, 10), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/cards/ops", nil, cookie)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	assert.Len(t, cards, 1)
}

func TestUpload_NoFile(t *testing.T) {
	env := setupTestRouter(t, false)
	cookie := env.login(t)

	req := uploadRequest(t, "", "", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"No file uploaded"`)

	var count int64
	require.NoError(t, env.db.Model(&domain.Upload{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpload_MetadataOnlyWithoutMirror(t *testing.T) {
	env := setupTestRouter(t, false)
	cookie := env.login(t)

	req := uploadRequest(t, "file", "notes.txt", []byte("hello"))
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, false, resp["mirrored"])
	assert.Equal(t, "notes.txt", resp["filename"])
	assert.NotContains(t, resp, "gdriveUrl")

	w = env.do(t, http.MethodGet, "/api/uploads", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var uploads []domain.Upload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploads))
	require.Len(t, uploads, 1)
	assert.Nil(t, uploads[0].MirrorURL)
}

func TestUpload_Mirrored(t *testing.T) {
	env := setupTestRouter(t, true)
	cookie := env.login(t)

	req := uploadRequest(t, "file", "plan.pdf", []byte("%PDF-1.7"))
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["mirrored"])
	assert.Equal(t, "https://mirror.example.com/plan.pdf", resp["gdriveUrl"])

	calls := env.mirror.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "%PDF-1.7", string(calls[0].Body))
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>kanban</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	router := Setup(Config{
		DB:        nil,
		Sessions:  session.NewManager(session.NewMemoryStore(), "s", time.Hour),
		Password:  testPassword,
		Cookie:    handler.CookieOptions{Name: testCookie, TTL: time.Hour},
		Metrics:   nil,
		Gatherer:  prometheus.NewRegistry(),
		StaticDir: dir,
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = get("/board/ops")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kanban")

	w = get("/../../etc/passwd")
	assert.NotEqual(t, http.StatusOK, w.Code, "paths must not escape the static directory")
	assert.NotContains(t, w.Body.String(), "root:")

	w = get("/api/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
