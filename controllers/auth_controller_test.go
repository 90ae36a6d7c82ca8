package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscribe/blogapi/config"
	"github.com/openscribe/blogapi/models"
	"github.com/openscribe/blogapi/routes"
	"github.com/openscribe/blogapi/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	os.Setenv("GIN_MODE", "test")
	gin.SetMode(gin.TestMode)
	if err := utils.InitLogger(config.Load()); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testEnv is one application instance over in-memory stores.
type testEnv struct {
	users  *fakeUserStore
	posts  *fakePostStore
	router *gin.Engine
}

func newEnv() *testEnv {
	utils.InitBlacklist(nil)
	users := newFakeUserStore()
	posts := newFakePostStore(users)
	return &testEnv{
		users:  users,
		posts:  posts,
		router: routes.SetupRouter(users, posts),
	}
}

func (e *testEnv) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) register(t *testing.T, username, email, password string) {
	t.Helper()
	w := e.do(http.MethodPost, "/users/register",
		`{"username":"`+username+`","email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", email, w.Body.String())
}

func (e *testEnv) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	w := e.do(http.MethodPost, "/users/login",
		`{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", email, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("login response did not set the session cookie")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestRegister(t *testing.T) {
	env := newEnv()

	t.Run("creates account without logging in", func(t *testing.T) {
		w := env.do(http.MethodPost, "/users/register",
			`{"username":"alice","email":"alice@example.com","password":"Str0ng$Pass"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"message":"User created successfully"}`, w.Body.String())
		assert.Empty(t, w.Result().Cookies(), "registration must not issue a session")
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		w := env.do(http.MethodPost, "/users/register",
			`{"username":"alice2","email":"alice@example.com","password":"Str0ng$Pass"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"User already exists"}`, w.Body.String())
	})

	t.Run("invalid fields aggregated", func(t *testing.T) {
		w := env.do(http.MethodPost, "/users/register",
			`{"username":"a","email":"nope","password":"weak"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error map[string]string `json:"error"`
		}
		decodeBody(t, w, &resp)
		assert.Len(t, resp.Error, 3)
		assert.Contains(t, resp.Error, "username")
		assert.Contains(t, resp.Error, "email")
		assert.Contains(t, resp.Error, "password")
	})

	t.Run("rejected while logged in", func(t *testing.T) {
		cookie := env.login(t, "alice@example.com", "Str0ng$Pass")
		w := env.do(http.MethodPost, "/users/register",
			`{"username":"bob","email":"bob@example.com","password":"Str0ng$Pass"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Already logged in"}`, w.Body.String())
	})
}

func TestLogin(t *testing.T) {
	env := newEnv()
	env.register(t, "alice", "alice@example.com", "Str0ng$Pass")

	t.Run("returns identity and session cookie", func(t *testing.T) {
		w := env.do(http.MethodPost, "/users/login",
			`{"email":"alice@example.com","password":"Str0ng$Pass"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var identity models.Identity
		decodeBody(t, w, &identity)
		assert.Equal(t, "alice", identity.Username)
		assert.Equal(t, models.DefaultAvatarURL, identity.Avatar)
		assert.NotEmpty(t, identity.ID)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, "token", cookie.Name)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, 3600, cookie.MaxAge)
	})

	t.Run("unknown email and wrong password answer identically", func(t *testing.T) {
		unknown := env.do(http.MethodPost, "/users/login",
			`{"email":"nobody@example.com","password":"Str0ng$Pass"}`)
		wrongPwd := env.do(http.MethodPost, "/users/login",
			`{"email":"alice@example.com","password":"Wr0ng$Pass!"}`)

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrongPwd.Code)
		assert.Equal(t, unknown.Body.String(), wrongPwd.Body.String())
		assert.JSONEq(t, `{"error":"Invalid Credentials"}`, unknown.Body.String())
	})

	t.Run("rejected while logged in", func(t *testing.T) {
		cookie := env.login(t, "alice@example.com", "Str0ng$Pass")
		w := env.do(http.MethodPost, "/users/login",
			`{"email":"alice@example.com","password":"Str0ng$Pass"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Already logged in"}`, w.Body.String())
	})
}

func TestLogout(t *testing.T) {
	env := newEnv()
	env.register(t, "alice", "alice@example.com", "Str0ng$Pass")

	t.Run("requires a session", func(t *testing.T) {
		w := env.do(http.MethodGet, "/users/logout", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("clears cookie and revokes token", func(t *testing.T) {
		cookie := env.login(t, "alice@example.com", "Str0ng$Pass")

		w := env.do(http.MethodGet, "/users/logout", "", cookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())

		cleared := w.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Equal(t, "token", cleared[0].Name)
		assert.Less(t, cleared[0].MaxAge, 0)

		// The old token must not open authenticated routes anymore.
		again := env.do(http.MethodGet, "/users/logout", "", cookie)
		assert.Equal(t, http.StatusUnauthorized, again.Code)
	})
}

func TestLivenessAndNoRoute(t *testing.T) {
	env := newEnv()

	w := env.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Server is running"}`, w.Body.String())

	w = env.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, w.Body.String())
}
