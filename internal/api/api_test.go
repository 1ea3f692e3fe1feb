package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cat_api/internal/apperror"
	"cat_api/internal/domain"
	"cat_api/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	alice = domain.Identity{UserID: 7, UserName: "alice", Email: "alice@example.com", Role: domain.RoleUser}
	bob   = domain.Identity{UserID: 8, UserName: "bob", Email: "bob@example.com", Role: domain.RoleUser}
	root  = domain.Identity{UserID: 1, UserName: "root", Email: "root@example.com", Role: domain.RoleAdmin}
)

// fakeCats records calls and returns canned results
type fakeCats struct {
	list    []domain.Cat
	err     error
	created []domain.CatInput
	updated []catUpdateCall
	deleted []int
}

type catUpdateCall struct {
	id   int
	data domain.CatUpdate
	who  domain.Identity
}

func (f *fakeCats) ListCats(context.Context) ([]domain.Cat, error) {
	return f.list, f.err
}

func (f *fakeCats) GetCat(_ context.Context, id int) (domain.Cat, error) {
	for _, cat := range f.list {
		if cat.CatID == id {
			return cat, nil
		}
	}
	return domain.Cat{}, apperror.NotFound("Cat not found")
}

func (f *fakeCats) CreateCat(_ context.Context, data domain.CatInput) (domain.Message, error) {
	f.created = append(f.created, data)
	return domain.Message{Message: "Cat added"}, f.err
}

func (f *fakeCats) UpdateCat(_ context.Context, id int, data domain.CatUpdate, who domain.Identity) (domain.Message, error) {
	f.updated = append(f.updated, catUpdateCall{id: id, data: data, who: who})
	return domain.Message{Message: "Cat updated"}, f.err
}

func (f *fakeCats) DeleteCat(_ context.Context, id int) (domain.Message, error) {
	f.deleted = append(f.deleted, id)
	return domain.Message{Message: "Cat deleted"}, f.err
}

// fakeUsers records calls and returns canned results
type fakeUsers struct {
	list    []domain.User
	err     error
	login   func(email string) (domain.User, error)
	created []domain.NewUser
	updated []userUpdateCall
	deleted []int
}

type userUpdateCall struct {
	id   int
	data domain.UserUpdate
}

func (f *fakeUsers) ListUsers(context.Context) ([]domain.User, error) {
	return f.list, f.err
}

func (f *fakeUsers) GetUser(_ context.Context, id int) (domain.User, error) {
	for _, u := range f.list {
		if u.UserID == id {
			return u, nil
		}
	}
	return domain.User{}, apperror.NotFound("No users found")
}

func (f *fakeUsers) CreateUser(_ context.Context, data domain.NewUser) (domain.Message, error) {
	f.created = append(f.created, data)
	return domain.Message{Message: "User added"}, f.err
}

func (f *fakeUsers) UpdateUser(_ context.Context, data domain.UserUpdate, id int) (domain.Message, error) {
	f.updated = append(f.updated, userUpdateCall{id: id, data: data})
	return domain.Message{Message: "User updated"}, f.err
}

func (f *fakeUsers) DeleteUser(_ context.Context, id int) (domain.Message, error) {
	f.deleted = append(f.deleted, id)
	return domain.Message{Message: "User deleted"}, f.err
}

func (f *fakeUsers) GetUserLogin(_ context.Context, email string) (domain.User, error) {
	return f.login(email)
}

// newRouter returns an engine with error rendering; routes are added by the caller
func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorResponder())
	return r
}

// as stands in for the JWT middleware
func as(who domain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, who)
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body domain.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func ptr[T any](v T) *T { return &v }
