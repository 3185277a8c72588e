package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Totarae/LinkCut/internal/auth"
	"github.com/Totarae/LinkCut/internal/codegen"
	"github.com/Totarae/LinkCut/internal/handlers"
	"github.com/Totarae/LinkCut/internal/model"
	"github.com/Totarae/LinkCut/internal/router"
	"github.com/Totarae/LinkCut/internal/service"
	"github.com/Totarae/LinkCut/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBaseURL = "http://localhost:8080"

// newTestRouter собирает сервис целиком на in-memory хранилищах.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	tokens, err := auth.NewTokenManager("test-secret", "linkcut-test", time.Hour)
	require.NoError(t, err)

	hasher := service.NewHasher(2)
	t.Cleanup(hasher.Close)

	logger := zap.NewNop()
	links := service.NewLinkService(storage.NewMemoryLinkStore(), nil, logger, testBaseURL)
	authSvc := service.NewAuthService(storage.NewMemoryUserStore(), tokens, hasher, logger)

	return router.NewRouter(handlers.NewHandler(links, authSvc, logger), tokens, logger)
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
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
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/register", model.RegisterRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/login", model.LoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// Сценарий: создание ссылки и редирект по коду
func TestShortenAndRedirect(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/shortlinks", model.ShortenRequest{URL: "https://example.com/a"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.ShortenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, codegen.Valid(resp.Code))
	assert.Equal(t, testBaseURL+"/"+resp.Code, resp.ShortURL)

	// сразу после создания код резолвится (read-after-write)
	req := httptest.NewRequest(http.MethodGet, "/"+resp.Code, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/a", rec.Header().Get("Location"))
}

func TestShorten_InvalidBody(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shortlinks", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w2 := doJSON(t, r, http.MethodPost, "/api/v1/shortlinks", model.ShortenRequest{URL: "nope"}, "")
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestRedirect_NotFound(t *testing.T) {
	r := newTestRouter(t)

	// валидный по форме, но не выданный код
	req := httptest.NewRequest(http.MethodGet, "/zzzzzz1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// заведомо чужой путь
	req = httptest.NewRequest(http.MethodGet, "/doesnotexist", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegister_Conflict(t *testing.T) {
	r := newTestRouter(t)
	body := model.RegisterRequest{Username: "alice", Password: "correct-horse"}

	w := doJSON(t, r, http.MethodPost, "/api/v1/register", body, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/register", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/register", model.RegisterRequest{Username: "ab", Password: "correct-horse"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/register", model.RegisterRequest{Username: "alice", Password: "short"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/register", model.RegisterRequest{Username: "bob", Password: "correct-horse"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/login", model.LoginRequest{Username: "bob", Password: "battery-staple"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/login", model.LoginRequest{Username: "ghost", Password: "battery-staple"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserLinks_Unauthorized(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/mine", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/users/mine", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// После N именных созданий mine возвращает ровно N ссылок
func TestUserLinks_ListOwned(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "carol", "correct-horse")

	created := make(map[string]string, 3)
	for i := 0; i < 3; i++ {
		url := fmt.Sprintf("https://example.com/%d", i)
		w := doJSON(t, r, http.MethodPost, "/api/v1/shortlinks", model.ShortenRequest{URL: url}, token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp model.ShortenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		created[resp.Code] = url
	}

	// анонимная ссылка не должна попасть в выдачу
	w := doJSON(t, r, http.MethodPost, "/api/v1/shortlinks", model.ShortenRequest{URL: "https://example.com/anon"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/users/mine", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var links []model.UserLink
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	require.Len(t, links, 3)
	for _, link := range links {
		assert.Equal(t, created[link.Code], link.URL)
	}
}

// У свежего пользователя пустой список, а не ошибка
func TestUserLinks_EmptyList(t *testing.T) {
	r := newTestRouter(t)
	token := registerAndLogin(t, r, "dave", "correct-horse")

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/mine", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestPing(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
