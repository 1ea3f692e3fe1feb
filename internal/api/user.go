package api

import (
	"cat_api/internal/apperror"   // Classified errors
	"cat_api/internal/domain"     // Domain models
	"cat_api/internal/utils"      // Password hashing
	"cat_api/internal/validation" // Binding error translation
	"context"                     // Request scoped deadlines
	"net/http"                    // HTTP status codes
	"strings"                     // Input normalization

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserModel is the user persistence the handlers depend on
type UserModel interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, userID int) (domain.User, error)
	CreateUser(ctx context.Context, data domain.NewUser) (domain.Message, error)
	UpdateUser(ctx context.Context, data domain.UserUpdate, userID int) (domain.Message, error)
	DeleteUser(ctx context.Context, userID int) (domain.Message, error)
	GetUserLogin(ctx context.Context, email string) (domain.User, error)
}

// Request struct for registration
type UserRequest struct {
	UserName string `json:"user_name" binding:"required,min=3"`     // Display name
	Email    string `json:"email" binding:"required,trimmed_email"` // Login email, trimmed and lowercased
	Password string `json:"password" binding:"required,min=5"`      // Plain password, hashed before storage
}

// Request struct for a partial user update
type UserUpdateRequest struct {
	UserName *string `json:"user_name" binding:"omitempty,min=3"`       // New display name
	Email    *string `json:"email" binding:"omitempty,trimmed_email"`   // New email
	Password *string `json:"password" binding:"omitempty,min=5"`        // New plain password
	Role     *string `json:"role" binding:"omitempty,oneof=user admin"` // New role, admins only
}

// toUpdate hashes a new password and drops the role unless allowed
func (r UserUpdateRequest) toUpdate(allowRole bool) (domain.UserUpdate, error) {
	upd := domain.UserUpdate{UserName: r.UserName, Email: r.Email}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		upd.Email = &email
	}
	if r.Password != nil {
		hash, err := utils.HashPassword(*r.Password)
		if err != nil {
			return domain.UserUpdate{}, apperror.Internal(err)
		}
		upd.PasswordHash = &hash
	}
	if allowRole {
		upd.Role = r.Role
	}
	return upd, nil
}

// ListUsersHandler returns every user without credentials
func ListUsersHandler(users UserModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.ListUsers(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetUserHandler returns one user by ID
func GetUserHandler(users UserModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bindID(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		user, err := users.GetUser(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// CreateUserHandler registers a new regular user
func CreateUserHandler(users UserModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(validation.Translate(err))
			return
		}
		// Hash the password before it goes anywhere near storage
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			_ = c.Error(apperror.Internal(err))
			return
		}
		msg, err := users.CreateUser(c.Request.Context(), domain.NewUser{
			UserName:     strings.TrimSpace(req.UserName),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash: hash,
			Role:         domain.RoleUser, // Admins are created with the CLI
		})
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, msg)
	}
}

// UpdateUserHandler lets an admin change any user, role included
func UpdateUserHandler(users UserModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bindID(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		updateUser(c, users, id, true)
	}
}

// UpdateCurrentUserHandler lets the caller change their own account
func UpdateCurrentUserHandler(users UserModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, err := requireIdentity(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		updateUser(c, users, who.UserID, false)
	}
}

func updateUser(c *gin.Context, users UserModel, userID int, allowRole bool) {
	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.Translate(err))
		return
	}
	upd, err := req.toUpdate(allowRole)
	if err != nil {
		_ = c.Error(err)
		return
	}
	msg, err := users.UpdateUser(c.Request.Context(), upd, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteUserHandler lets an admin remove any user
func DeleteUserHandler(users UserModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bindID(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		deleteUser(c, users, id)
	}
}

// DeleteCurrentUserHandler removes the caller's own account
func DeleteCurrentUserHandler(users UserModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, err := requireIdentity(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		deleteUser(c, users, who.UserID)
	}
}

func deleteUser(c *gin.Context, users UserModel, userID int) {
	msg, err := users.DeleteUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// CheckTokenHandler echoes the identity carried by the bearer token
func CheckTokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		who, err := requireIdentity(c)
		if err != nil {
			_ = c.Error(apperror.Forbidden("token not valid"))
			return
		}
		c.JSON(http.StatusOK, who)
	}
}
