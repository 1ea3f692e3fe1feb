package store

import (
	"context"
	"net/http"
	"testing"

	"cat_api/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var publicUserColumns = []string{"user_id", "user_name", "email", "role"}

func TestUserStore_ListUsers(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := NewUserStore(gdb)

	mock.ExpectQuery(`SELECT user_id, user_name, email, role FROM sssf_user$`).
		WillReturnRows(sqlmock.NewRows(publicUserColumns).
			AddRow(1, "admin", "admin@example.com", "admin").
			AddRow(7, "alice", "alice@example.com", "user"))

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[1].UserName)
	assert.Empty(t, users[1].PasswordHash)
}

func TestUserStore_ListUsers_EmptyIsNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := NewUserStore(gdb)

	mock.ExpectQuery(`SELECT user_id, user_name, email, role FROM sssf_user`).
		WillReturnRows(sqlmock.NewRows(publicUserColumns))

	_, err := s.ListUsers(context.Background())
	appErr := requireAppError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "No users found", appErr.Message)
}

func TestUserStore_GetUser(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := NewUserStore(gdb)

	mock.ExpectQuery(`SELECT user_id, user_name, email, role FROM sssf_user WHERE user_id = \?`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(publicUserColumns).AddRow(7, "alice", "alice@example.com", "user"))

	u, err := s.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.User{UserID: 7, UserName: "alice", Email: "alice@example.com", Role: "user"}, u)
}

func TestUserStore_CreateUser(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := NewUserStore(gdb)

	mock.ExpectExec(`INSERT INTO sssf_user \(user_name, email, password_hash, role\) VALUES \(\?, \?, \?, \?\)`).
		WithArgs("alice", "alice@example.com", "$2a$hash", "user").
		WillReturnResult(sqlmock.NewResult(7, 1))

	msg, err := s.CreateUser(context.Background(), domain.NewUser{
		UserName:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$hash",
		Role:         domain.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, "User added", msg.Message)
}

func TestUserStore_CreateUser_DuplicateEmail(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := NewUserStore(gdb)

	mock.ExpectExec(`INSERT INTO sssf_user`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice@example.com' for key 'email'"})

	_, err := s.CreateUser(context.Background(), domain.NewUser{UserName: "alice", Email: "alice@example.com", PasswordHash: "x", Role: "user"})
	appErr := requireAppError(t, err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Email already in use", appErr.Message)
}

func TestUserStore_UpdateUser(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := NewUserStore(gdb)
	email := "new@example.com"
	name := "alicia"

	mock.ExpectExec(`UPDATE .sssf_user. SET .email.=\?,.user_name.=\? WHERE user_id = \?$`).
		WithArgs("new@example.com", "alicia", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	msg, err := s.UpdateUser(context.Background(), domain.UserUpdate{Email: &email, UserName: &name}, 7)
	require.NoError(t, err)
	assert.Equal(t, "User updated", msg.Message)
}

func TestUserStore_UpdateUser_ZeroRows(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := NewUserStore(gdb)
	name := "alicia"

	mock.ExpectExec(`UPDATE .sssf_user. SET`).
		WithArgs("alicia", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.UpdateUser(context.Background(), domain.UserUpdate{UserName: &name}, 99)
	appErr := requireAppError(t, err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "No users updated", appErr.Message)
}

func TestUserStore_DeleteUser(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		driver   error
		wantMsg  string
		wantCode int
	}{
		{name: "deleted", affected: 1, wantMsg: "User deleted"},
		{name: "missing", affected: 0, wantMsg: "No users deleted", wantCode: http.StatusBadRequest},
		{name: "still owns cats", driver: &mysql.MySQLError{Number: 1451}, wantMsg: "User still owns cats", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb, mock := newMockDB(t)
			s := NewUserStore(gdb)

			exp := mock.ExpectExec(`DELETE FROM sssf_user WHERE user_id = \?`).WithArgs(7)
			if tt.driver != nil {
				exp.WillReturnError(tt.driver)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			msg, err := s.DeleteUser(context.Background(), 7)
			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.wantMsg, msg.Message)
				return
			}
			appErr := requireAppError(t, err)
			assert.Equal(t, tt.wantCode, appErr.Status)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestUserStore_GetUserLogin(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := NewUserStore(gdb)

	mock.ExpectQuery(`SELECT user_id, user_name, email, role, password_hash FROM sssf_user WHERE email = \?`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(append(publicUserColumns, "password_hash")).
			AddRow(7, "alice", "alice@example.com", "user", "$2a$hash"))

	u, err := s.GetUserLogin(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$hash", u.PasswordHash)
}

// Unknown emails are reported with status 200, not 404 or 401. Pinned on purpose.
func TestUserStore_GetUserLogin_UnknownEmailIs200(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := NewUserStore(gdb)

	mock.ExpectQuery(`FROM sssf_user WHERE email = \?`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(append(publicUserColumns, "password_hash")))

	_, err := s.GetUserLogin(context.Background(), "ghost@example.com")
	appErr := requireAppError(t, err)
	assert.Equal(t, http.StatusOK, appErr.Status)
	assert.Equal(t, "Invalid username/password", appErr.Message)
}
