// Package store issues one parameterized SQL statement per operation against
// MySQL and interprets row counts as success or a classified failure.
package store

import (
	"cat_api/internal/apperror" // Classified errors
	"cat_api/internal/domain"   // Domain models
	"errors"                    // Error inspection

	"github.com/go-sql-driver/mysql" // MySQL server error numbers
	"gorm.io/gorm"                   // GORM ORM library
)

const (
	catTable  = "sssf_cat"  // Cats, owner references users
	userTable = "sssf_user" // Users
)

// MySQL server error numbers the API reports as client errors.
const (
	errDuplicateEntry = 1062 // Unique email taken
	errRowReferenced  = 1451 // User still referenced by cats
	errNoReferenced   = 1452 // Owner does not exist
)

// OwnerScope restricts a mutating statement to rows the caller may touch.
// Admins are unrestricted; everyone else only matches rows they own.
func OwnerScope(who domain.Identity) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if who.IsAdmin() {
			return tx // No ownership predicate
		}
		return tx.Where("owner = ?", who.UserID) // Only the caller's rows
	}
}

// classify maps driver failures to API errors; anything unknown stays unclassified.
func classify(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errDuplicateEntry:
			return apperror.BadRequest("Email already in use")
		case errRowReferenced:
			return apperror.BadRequest("User still owns cats")
		case errNoReferenced:
			return apperror.BadRequest("Owner does not exist")
		}
	}
	return apperror.Internal(err) // Logged, hidden from clients
}
