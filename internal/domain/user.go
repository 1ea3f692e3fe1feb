package domain

// Roles a user can hold
const (
	RoleUser  = "user"  // Regular account
	RoleAdmin = "admin" // Administrator, may mutate any resource
)

// User Model
type User struct {
	UserID       int    `json:"user_id" gorm:"column:user_id;primaryKey"` // Primary key
	UserName     string `json:"user_name" gorm:"column:user_name"`        // Display name
	Email        string `json:"email" gorm:"column:email"`                // Unique email, used for login
	Role         string `json:"role" gorm:"column:role"`                  // Role: user or admin
	PasswordHash string `json:"-" gorm:"column:password_hash"`            // Hashed password, never serialized
}

// NewUser is the write-side shape of a user insert
type NewUser struct {
	UserName     string // Display name
	Email        string // Unique email
	PasswordHash string // Already hashed password
	Role         string // Role: user or admin
}

// UserUpdate carries the columns a user update may touch; nil fields are left unchanged
type UserUpdate struct {
	UserName     *string // New display name
	Email        *string // New email
	PasswordHash *string // New hashed password
	Role         *string // New role, admin path only
}

// Empty reports whether the update would change nothing
func (u UserUpdate) Empty() bool {
	return u.UserName == nil && u.Email == nil && u.PasswordHash == nil && u.Role == nil
}

// Identity is the authenticated caller attached to a request
type Identity struct {
	UserID   int    `json:"user_id"`   // Caller user ID
	UserName string `json:"user_name"` // Caller display name
	Email    string `json:"email"`     // Caller email
	Role     string `json:"role"`      // Caller role
}

// IsAdmin reports whether the caller holds the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IdentityOf builds the identity carried in tokens for a stored user
func IdentityOf(u User) Identity {
	return Identity{UserID: u.UserID, UserName: u.UserName, Email: u.Email, Role: u.Role}
}

// Message is the {message} response body
type Message struct {
	Message string `json:"message"` // Human readable outcome
}
