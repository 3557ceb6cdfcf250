package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/joaobosco/lembretes/internal/config"
	"github.com/joaobosco/lembretes/internal/dataclient"
	"github.com/joaobosco/lembretes/internal/model"
	"github.com/joaobosco/lembretes/internal/repo"
	"github.com/joaobosco/lembretes/internal/service"
)

type testEnv struct {
	router http.Handler
	users  *service.UserService
	tokens *service.TokenService
	joao   *model.User
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client := dataclient.NewMemory(dataclient.WithUnique("users", "email"))
	userRepo := repo.NewUserRepo(client)
	reminderRepo := repo.NewReminderRepo(client)
	tokens, err := service.NewTokenService(config.JWTConfig{Secret: "test-secret", ExpiresIn: "2h"})
	require.NoError(t, err)
	userService := service.NewUserService(userRepo)

	email, pass := "joao@teste.com", "12345"
	joao, err := userService.Create(context.Background(), service.CreateUserInput{Name: "João", Email: &email, Password: &pass})
	require.NoError(t, err)

	router, err := NewRouter(RouterDeps{
		Auth:      NewAuthHandler(service.NewAuthService(userRepo, tokens)),
		Users:     NewUserHandler(userService),
		Reminders: NewReminderHandler(service.NewReminderService(reminderRepo, userRepo)),
		System:    NewSystemHandler("1.0.0"),
		Tokens:    tokens,
		Docs:      config.DocsConfig{Title: "Api - Lembretes", Version: "1.0.6", ServerURL: "http://localhost:3000"},
		BodyLimit: 1 << 20,
	})
	require.NoError(t, err)
	return &testEnv{router: router, users: userService, tokens: tokens, joao: joao}
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	token, err := e.tokens.Issue(model.Identity{ID: e.joao.ID, Email: "joao@teste.com"})
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

func TestPublicRoutes(t *testing.T) {
	env := setupRouter(t)

	w := env.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"ok":true,"message":"Api de Lembretes - João"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/favicon.ico", "", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[map[string]string](t, w)
	require.Equal(t, "API de Lembretes", info["name"])
	require.Equal(t, "/docs", info["documentation"])

	w = env.do(t, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Não encontrado", errorOf(t, w))

	w = env.do(t, http.MethodGet, "/api/nope", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin(t *testing.T) {
	env := setupRouter(t)

	w := env.do(t, http.MethodPost, "/api/login", `{"email":"joao@teste.com","password":"12345"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[service.LoginResult](t, w)
	require.NotEmpty(t, res.Token)
	require.Equal(t, "Login bem-sucedido", res.Message)
	require.Equal(t, "2h", res.ExpiresIn)
	require.Equal(t, "joao@teste.com", res.User.Email)
	require.Equal(t, env.joao.ID, res.User.ID)
	require.NotContains(t, w.Body.String(), "password")

	w = env.do(t, http.MethodGet, "/api/users", "", res.Token)
	require.Equal(t, http.StatusOK, w.Code)

	cases := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"empty body", "", http.StatusBadRequest, "Informe email e password."},
		{"missing password", `{"email":"joao@teste.com"}`, http.StatusBadRequest, "Informe email e password."},
		{"wrong type", `{"email":"joao@teste.com","password":12345}`, http.StatusBadRequest, "Informe email e password."},
		{"wrong password", `{"email":"joao@teste.com","password":"54321"}`, http.StatusUnauthorized, "Credenciais inválidas"},
		{"unknown email", `{"email":"maria@teste.com","password":"12345"}`, http.StatusUnauthorized, "Credenciais inválidas"},
		{"malformed", `{"email":`, http.StatusBadRequest, "JSON inválido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/login", tc.body, "")
			require.Equal(t, tc.status, w.Code)
			require.Equal(t, tc.msg, errorOf(t, w))
		})
	}
}

func TestResourcesRequireToken(t *testing.T) {
	env := setupRouter(t)
	token := env.token(t)

	for _, path := range []string{"/api/users", "/api/users/" + env.joao.ID, "/api/reminders", "/api/reminders/x"} {
		w := env.do(t, http.MethodGet, path, "", "")
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
		require.Equal(t, "Token ausente", errorOf(t, w))

		w = env.do(t, http.MethodGet, path, "", token+"x")
		require.Equal(t, http.StatusForbidden, w.Code, path)
		require.Equal(t, "Token inválido ou expirado", errorOf(t, w))
	}
}

func TestUsersResource(t *testing.T) {
	env := setupRouter(t)
	token := env.token(t)

	w := env.do(t, http.MethodPost, "/api/users", `{"name":"Maria","age":31,"profession":"engenheira"}`, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[model.User](t, w)
	require.NotEmpty(t, created.ID)

	w = env.do(t, http.MethodGet, "/api/users/"+created.ID, "", token)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[model.User](t, w)
	require.Equal(t, "Maria", got.Name)
	require.Equal(t, 31, *got.Age)
	require.Equal(t, "engenheira", *got.Profession)

	w = env.do(t, http.MethodGet, "/api/users", "", token)
	list := decode[[]model.User](t, w)
	require.Len(t, list, 2)
	require.Equal(t, created.ID, list[0].ID)

	for _, body := range []string{`{"age":-1,"name":"x"}`, `{"name":"x","age":"abc"}`, `{"name":"x","age":1.5}`} {
		w = env.do(t, http.MethodPost, "/api/users", body, token)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		require.Equal(t, service.MsgInvalidAge, errorOf(t, w))
	}
	w = env.do(t, http.MethodPost, "/api/users", `{"age":3}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "nome é obrigatório", errorOf(t, w))

	w = env.do(t, http.MethodPatch, "/api/users/"+created.ID, `{}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Sem campos para atualizar", errorOf(t, w))

	w = env.do(t, http.MethodPatch, "/api/users/"+created.ID, `{"profession":null,"age":32}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	patched := decode[model.User](t, w)
	require.Nil(t, patched.Profession)
	require.Equal(t, 32, *patched.Age)
	require.Equal(t, "Maria", patched.Name)

	w = env.do(t, http.MethodPost, "/api/users", `{"name":"Outro","email":"joao@teste.com"}`, token)
	require.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodDelete, "/api/users/"+created.ID, "", token)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.String())
	w = env.do(t, http.MethodDelete, "/api/users/"+created.ID, "", token)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Usuário não encontrado", errorOf(t, w))
}

func TestUnknownUserIs404(t *testing.T) {
	env := setupRouter(t)
	token := env.token(t)

	for _, id := range []string{"3f2b8c1e-6d4a-4b9e-8f7c-1a2b3c4d5e6f", "abc"} {
		w := env.do(t, http.MethodGet, "/api/users/"+id, "", token)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "Usuário não encontrado", errorOf(t, w))

		w = env.do(t, http.MethodPatch, "/api/users/"+id, `{"name":"x"}`, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestRemindersResource(t *testing.T) {
	env := setupRouter(t)
	token := env.token(t)
	owner := env.joao.ID

	w := env.do(t, http.MethodPost, "/api/reminders",
		`{"description":"x","priority":6,"user_id":"`+owner+`","time":"12:00"}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "priority deve ser 1..5", errorOf(t, w))

	w = env.do(t, http.MethodPost, "/api/reminders",
		`{"description":"x","priority":2,"user_id":"3f2b8c1e-6d4a-4b9e-8f7c-1a2b3c4d5e6f","time":"12:00"}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "user_id não encontrado", errorOf(t, w))

	w = env.do(t, http.MethodPost, "/api/reminders",
		`{"description":"x","priority":2,"user_id":"`+owner+`","time":"7:00"}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "time deve ser HH:MM", errorOf(t, w))

	w = env.do(t, http.MethodGet, "/api/reminders", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/reminders",
		`{"description":"Reunião","priority":3,"user_id":"`+owner+`","time":"15:30"}`, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	late := decode[model.Reminder](t, w)
	w = env.do(t, http.MethodPost, "/api/reminders",
		`{"description":"Café","priority":1,"user_id":"`+owner+`","time":"07:00"}`, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/reminders?user_id="+owner, "", token)
	list := decode[[]model.Reminder](t, w)
	require.Len(t, list, 2)
	require.Equal(t, "07:00", list[0].Time)

	w = env.do(t, http.MethodPatch, "/api/reminders/"+late.ID, `{"priority":"alta"}`, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "priority deve ser 1..5", errorOf(t, w))

	body := `{"priority":5,"time":"16:00"}`
	w = env.do(t, http.MethodPatch, "/api/reminders/"+late.ID, body, token)
	require.Equal(t, http.StatusOK, w.Code)
	first := w.Body.String()
	w = env.do(t, http.MethodPatch, "/api/reminders/"+late.ID, body, token)
	require.JSONEq(t, first, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/reminders/"+late.ID, "", token)
	got := decode[model.Reminder](t, w)
	require.Equal(t, 5, got.Priority)
	require.Equal(t, "Reunião", got.Description)

	w = env.do(t, http.MethodDelete, "/api/reminders/"+late.ID, "", token)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodGet, "/api/reminders/"+late.ID, "", token)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Lembrete não encontrado", errorOf(t, w))
	w = env.do(t, http.MethodDelete, "/api/reminders/"+late.ID, "", token)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocsEndpoints(t *testing.T) {
	env := setupRouter(t)

	w := env.do(t, http.MethodGet, "/docs.json", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	doc := decode[map[string]interface{}](t, w)
	require.Equal(t, "3.0.3", doc["openapi"])
	paths := doc["paths"].(map[string]interface{})
	for _, p := range []string{"/api/login", "/api/users", "/api/users/{id}", "/api/reminders", "/api/reminders/{id}"} {
		require.Contains(t, paths, p)
	}
	login := paths["/api/login"].(map[string]interface{})["post"].(map[string]interface{})
	require.NotContains(t, login, "security")
	users := paths["/api/users"].(map[string]interface{})["get"].(map[string]interface{})
	require.Contains(t, users, "security")

	w = env.do(t, http.MethodGet, "/docs.yaml", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "/api/reminders/{id}")

	w = env.do(t, http.MethodGet, "/docs", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.Contains(t, w.Body.String(), "/docs.json")
}

func TestBodyTooLarge(t *testing.T) {
	env := setupRouter(t)
	big := `{"name":"` + strings.Repeat("a", 2<<20) + `"}`
	w := env.do(t, http.MethodPost, "/api/users", big, env.token(t))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
