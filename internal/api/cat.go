package api

import (
	"cat_api/internal/domain"     // Domain models
	"cat_api/internal/validation" // Binding error translation
	"context"                     // Request scoped deadlines
	"net/http"                    // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// CatModel is the cat persistence the handlers depend on
type CatModel interface {
	ListCats(ctx context.Context) ([]domain.Cat, error)
	GetCat(ctx context.Context, catID int) (domain.Cat, error)
	CreateCat(ctx context.Context, data domain.CatInput) (domain.Message, error)
	UpdateCat(ctx context.Context, catID int, data domain.CatUpdate, who domain.Identity) (domain.Message, error)
	DeleteCat(ctx context.Context, catID int) (domain.Message, error)
}

// Request struct for coordinates; both halves must be sent, zero is a valid value
type CoordsRequest struct {
	Lat *float64 `json:"lat" form:"lat" binding:"required,gte=-90,lte=90"`   // Latitude
	Lng *float64 `json:"lng" form:"lng" binding:"required,gte=-180,lte=180"` // Longitude
}

// toCoords assumes validation already rejected missing halves
func (r CoordsRequest) toCoords() domain.Coords {
	return domain.Coords{Lat: *r.Lat, Lng: *r.Lng}
}

// Request struct for adding a cat, accepted as JSON or multipart form
type CatRequest struct {
	CatName   string        `json:"cat_name" form:"cat_name" binding:"required,min=2"`                 // Cat name
	Weight    float64       `json:"weight" form:"weight" binding:"required,gt=0"`                      // Weight in kg
	Birthdate string        `json:"birthdate" form:"birthdate" binding:"required,datetime=2006-01-02"` // YYYY-MM-DD
	Coords    CoordsRequest `json:"coords"`                                                            // Where the cat lives
}

// Request struct for a partial cat update
type CatUpdateRequest struct {
	CatName   *string        `json:"cat_name" binding:"omitempty,min=2"`                // New name
	Weight    *float64       `json:"weight" binding:"omitempty,gt=0"`                   // New weight
	Birthdate *string        `json:"birthdate" binding:"omitempty,datetime=2006-01-02"` // New birthdate
	Coords    *CoordsRequest `json:"coords"`                                            // New location
}

func (r CatUpdateRequest) toUpdate() domain.CatUpdate {
	upd := domain.CatUpdate{CatName: r.CatName, Weight: r.Weight, Birthdate: r.Birthdate}
	if r.Coords != nil {
		coords := r.Coords.toCoords()
		upd.Coords = &coords
	}
	return upd
}

// ListCatsHandler returns every cat with its owner
func ListCatsHandler(cats CatModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := cats.ListCats(c.Request.Context())
		if err != nil {
			_ = c.Error(err) // Rendered by ErrorResponder
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetCatHandler returns one cat by ID
func GetCatHandler(cats CatModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bindID(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		cat, err := cats.GetCat(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// CreateCatHandler adds a cat owned by the caller, storing the optional image
func CreateCatHandler(cats CatModel, uploads *Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, err := requireIdentity(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		var req CatRequest // JSON or form, chosen by Content-Type
		if err := c.ShouldBind(&req); err != nil {
			_ = c.Error(validation.Translate(err))
			return
		}
		filename, err := uploads.Save(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		msg, err := cats.CreateCat(c.Request.Context(), domain.CatInput{
			CatName:   req.CatName,
			Weight:    req.Weight,
			Owner:     who.UserID, // Owner always comes from the token
			Filename:  filename,
			Birthdate: req.Birthdate,
			Coords:    req.Coords.toCoords(),
		})
		if err != nil {
			uploads.Remove(filename) // Drop the orphaned file
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, msg)
	}
}

// UpdateCatHandler changes a cat the caller owns, or any cat for admins
func UpdateCatHandler(cats CatModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, err := requireIdentity(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		id, err := bindID(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		var req CatUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(validation.Translate(err))
			return
		}
		msg, err := cats.UpdateCat(c.Request.Context(), id, req.toUpdate(), who)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, msg)
	}
}

// DeleteCatHandler removes a cat by ID
func DeleteCatHandler(cats CatModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bindID(c)
		if err != nil {
			_ = c.Error(err)
			return
		}
		msg, err := cats.DeleteCat(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, msg)
	}
}
