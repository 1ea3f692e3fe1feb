package api

import (
	"cat_api/internal/apperror"   // Classified errors
	"cat_api/internal/domain"     // Domain models
	"cat_api/internal/middleware" // Identity lookup
	"cat_api/internal/validation" // Binding error translation
	"errors"                      // Error inspection

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Validation errors
)

// idParam is the :id path parameter shared by all item routes
type idParam struct {
	ID int `uri:"id" binding:"required,min=1"` // Resource ID
}

// bindID reads and validates the :id path parameter
func bindID(c *gin.Context) (int, error) {
	var p idParam
	if err := c.ShouldBindUri(&p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return 0, validation.Translate(err) // Rule failures, e.g. id < 1
		}
		// Not a number at all
		return 0, apperror.Validation([]apperror.FieldError{{Field: "id", Message: "Invalid value"}})
	}
	return p.ID, nil
}

// requireIdentity returns the caller or the "No user" failure
func requireIdentity(c *gin.Context) (domain.Identity, error) {
	who, ok := middleware.CurrentIdentity(c)
	if !ok || who.UserID == 0 {
		return domain.Identity{}, apperror.MissingIdentity("No user")
	}
	return who, nil
}
