package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cat_api/internal/api"
	"cat_api/internal/apperror"
	"cat_api/internal/config"
	"cat_api/internal/domain"
	"cat_api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type stubCats struct{}

func (stubCats) ListCats(context.Context) ([]domain.Cat, error) {
	return nil, apperror.NotFound("No cats found")
}

func (stubCats) GetCat(context.Context, int) (domain.Cat, error) {
	return domain.Cat{CatID: 1, CatName: "Fluffy"}, nil
}

func (stubCats) CreateCat(context.Context, domain.CatInput) (domain.Message, error) {
	return domain.Message{Message: "Cat added"}, nil
}

func (stubCats) UpdateCat(context.Context, int, domain.CatUpdate, domain.Identity) (domain.Message, error) {
	return domain.Message{Message: "Cat updated"}, nil
}

func (stubCats) DeleteCat(context.Context, int) (domain.Message, error) {
	return domain.Message{Message: "Cat deleted"}, nil
}

type stubUsers struct{}

func (stubUsers) ListUsers(context.Context) ([]domain.User, error) { return []domain.User{}, nil }

func (stubUsers) GetUser(_ context.Context, id int) (domain.User, error) {
	if id == 1 {
		return domain.User{UserID: 1, UserName: "root", Role: domain.RoleAdmin}, nil
	}
	return domain.User{UserID: id, UserName: "alice", Role: domain.RoleUser}, nil
}

func (stubUsers) CreateUser(context.Context, domain.NewUser) (domain.Message, error) {
	return domain.Message{Message: "User added"}, nil
}

func (stubUsers) UpdateUser(context.Context, domain.UserUpdate, int) (domain.Message, error) {
	return domain.Message{Message: "User updated"}, nil
}

func (stubUsers) DeleteUser(context.Context, int) (domain.Message, error) {
	return domain.Message{Message: "User deleted"}, nil
}

func (stubUsers) GetUserLogin(context.Context, string) (domain.User, error) {
	return domain.User{}, apperror.WithStatus(apperror.NotFound("Invalid username/password"), http.StatusOK)
}

func testRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	return NewRouter(Deps{
		Cats:           stubCats{},
		Users:          stubUsers{},
		Limiter:        utils.NewLoginLimiter(nil, 5, time.Minute),
		Uploads:        api.NewUploader(dir),
		JWTSecret:      testSecret,
		JWTTTL:         time.Hour,
		RequestTimeout: time.Second,
		MaxBodyBytes:   1 << 20,
	}), dir
}

func token(t *testing.T, who domain.Identity) string {
	t.Helper()
	tok, err := utils.GenerateJWT(who, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRouter_Access(t *testing.T) {
	r, _ := testRouter(t)
	user := token(t, domain.Identity{UserID: 7, UserName: "alice", Role: domain.RoleUser})
	admin := token(t, domain.Identity{UserID: 1, UserName: "root", Role: domain.RoleAdmin})
	staleAdmin := token(t, domain.Identity{UserID: 7, UserName: "alice", Role: domain.RoleAdmin})

	tests := []struct {
		name       string
		method     string
		path       string
		auth       string
		wantStatus int
		wantMsg    string
	}{
		{"public list", http.MethodGet, "/cats", "", http.StatusNotFound, "No cats found"},
		{"public get", http.MethodGet, "/cats/1", "", http.StatusOK, ""},
		{"create needs token", http.MethodPost, "/cats", "", http.StatusUnauthorized, "Missing or invalid Authorization header"},
		{"update needs token", http.MethodPut, "/cats/1", "", http.StatusUnauthorized, "Missing or invalid Authorization header"},
		{"delete with token", http.MethodDelete, "/cats/1", user, http.StatusOK, "Cat deleted"},
		{"check token anonymous", http.MethodGet, "/users/token", "", http.StatusForbidden, "token not valid"},
		{"check token bad", http.MethodGet, "/users/token", "Bearer nope", http.StatusForbidden, "token not valid"},
		{"check token", http.MethodGet, "/users/token", user, http.StatusOK, ""},
		{"admin update as user", http.MethodPut, "/users/2", user, http.StatusForbidden, "Admin only"},
		{"admin delete as user", http.MethodDelete, "/users/2", user, http.StatusForbidden, "Admin only"},
		{"admin delete", http.MethodDelete, "/users/2", admin, http.StatusOK, "User deleted"},
		{"stale admin token", http.MethodDelete, "/users/2", staleAdmin, http.StatusForbidden, "Admin only"},
		{"self delete", http.MethodDelete, "/users", user, http.StatusOK, "User deleted"},
		{"self delete anonymous", http.MethodDelete, "/users", "", http.StatusUnauthorized, "Missing or invalid Authorization header"},
		{"unknown route", http.MethodGet, "/dogs", "", http.StatusNotFound, "Not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			if tt.wantMsg != "" {
				var body domain.Message
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMsg, body.Message)
			}
		})
	}
}

func TestRouter_PanicKeepsMessageBody(t *testing.T) {
	r, _ := testRouter(t)
	r.GET("/boom", func(c *gin.Context) { panic("index out of range") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	var body domain.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperror.UnclassifiedMessage, body.Message)
}

func TestRouter_ServesUploads(t *testing.T) {
	r, dir := testRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cat.txt"), []byte("meow"), 0o600))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/cat.txt", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "meow", rec.Body.String())
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })

	require.NoError(t, SetupLogger(&config.Config{LogLevel: "debug"}))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, SetupLogger(&config.Config{LogLevel: "loud"}))
}

func TestNewRedis_DisabledWithoutAddr(t *testing.T) {
	rdb, err := NewRedis(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}
