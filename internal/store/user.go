package store

import (
	"cat_api/internal/apperror" // Classified errors
	"cat_api/internal/domain"   // Domain models
	"context"                   // Request scoped deadlines
	"net/http"                  // HTTP status codes

	"gorm.io/gorm" // GORM ORM library
)

// UserStore persists users. Only GetUserLogin ever reads the password hash.
type UserStore struct {
	db *gorm.DB // Shared connection pool
}

// NewUserStore returns a UserStore over db
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User // Hash column is never selected
	if err := s.db.WithContext(ctx).Raw("SELECT user_id, user_name, email, role FROM sssf_user").Scan(&users).Error; err != nil {
		return nil, classify(err)
	}
	if len(users) == 0 {
		return nil, apperror.NotFound("No users found") // Empty table
	}
	return users, nil
}

func (s *UserStore) GetUser(ctx context.Context, userID int) (domain.User, error) {
	var users []domain.User
	const query = "SELECT user_id, user_name, email, role FROM sssf_user WHERE user_id = ?"
	if err := s.db.WithContext(ctx).Raw(query, userID).Scan(&users).Error; err != nil {
		return domain.User{}, classify(err)
	}
	if len(users) == 0 {
		return domain.User{}, apperror.NotFound("No users found")
	}
	return users[0], nil
}

// CreateUser inserts a user whose password is already hashed.
func (s *UserStore) CreateUser(ctx context.Context, data domain.NewUser) (domain.Message, error) {
	const query = `
		INSERT INTO sssf_user (user_name, email, password_hash, role)
		VALUES (?, ?, ?, ?)`
	res := s.db.WithContext(ctx).Exec(query, data.UserName, data.Email, data.PasswordHash, data.Role)
	if res.Error != nil {
		return domain.Message{}, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Message{}, apperror.Persistence("No users added")
	}
	return domain.Message{Message: "User added"}, nil
}

func (s *UserStore) UpdateUser(ctx context.Context, data domain.UserUpdate, userID int) (domain.Message, error) {
	if data.Empty() {
		return domain.Message{}, apperror.BadRequest("Nothing to update")
	}
	res := s.db.WithContext(ctx).
		Table(userTable).
		Where("user_id = ?", userID).
		Updates(userColumns(data)) // Only the columns that were sent
	if res.Error != nil {
		return domain.Message{}, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Message{}, apperror.Persistence("No users updated")
	}
	return domain.Message{Message: "User updated"}, nil
}

func (s *UserStore) DeleteUser(ctx context.Context, userID int) (domain.Message, error) {
	res := s.db.WithContext(ctx).Exec("DELETE FROM sssf_user WHERE user_id = ?", userID)
	if res.Error != nil {
		return domain.Message{}, classify(res.Error) // 1451 while cats reference the user
	}
	if res.RowsAffected == 0 {
		return domain.Message{}, apperror.Persistence("No users deleted")
	}
	return domain.Message{Message: "User deleted"}, nil
}

// GetUserLogin returns the full row, hash included, for credential checks.
// An unknown email is reported with status 200.
func (s *UserStore) GetUserLogin(ctx context.Context, email string) (domain.User, error) {
	var users []domain.User
	const query = "SELECT user_id, user_name, email, role, password_hash FROM sssf_user WHERE email = ?"
	if err := s.db.WithContext(ctx).Raw(query, email).Scan(&users).Error; err != nil {
		return domain.User{}, classify(err)
	}
	if len(users) == 0 {
		return domain.User{}, apperror.WithStatus(apperror.NotFound("Invalid username/password"), http.StatusOK) // Same body as a wrong password
	}
	return users[0], nil
}

// userColumns maps the set fields of an update to column names
func userColumns(data domain.UserUpdate) map[string]any {
	cols := map[string]any{}
	if data.UserName != nil {
		cols["user_name"] = *data.UserName
	}
	if data.Email != nil {
		cols["email"] = *data.Email
	}
	if data.PasswordHash != nil {
		cols["password_hash"] = *data.PasswordHash
	}
	if data.Role != nil {
		cols["role"] = *data.Role
	}
	return cols
}
