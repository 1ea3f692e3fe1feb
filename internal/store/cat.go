package store

import (
	"cat_api/internal/apperror" // Classified errors
	"cat_api/internal/domain"   // Domain models
	"context"                   // Request scoped deadlines
	"time"                      // DATE column scanning

	"gorm.io/gorm" // GORM ORM library
)

const dateLayout = "2006-01-02" // Birthdate wire format

const catSelect = `
	SELECT sssf_cat.cat_id, sssf_cat.cat_name, sssf_cat.weight, sssf_cat.filename, sssf_cat.birthdate,
		ST_X(sssf_cat.coords) AS lat, ST_Y(sssf_cat.coords) AS lng,
		sssf_user.user_id AS owner_id, sssf_user.user_name AS owner_name
	FROM sssf_cat
	JOIN sssf_user ON sssf_cat.owner = sssf_user.user_id`

// catRow is one joined result row before the owner is folded into a summary.
type catRow struct {
	CatID     int       `gorm:"column:cat_id"`     // Primary key
	CatName   string    `gorm:"column:cat_name"`   // Cat name
	Weight    float64   `gorm:"column:weight"`     // Weight in kg
	Filename  *string   `gorm:"column:filename"`   // Stored image, NULL when none
	Birthdate time.Time `gorm:"column:birthdate"`  // DATE, parsed by the driver
	Lat       float64   `gorm:"column:lat"`        // ST_X of coords
	Lng       float64   `gorm:"column:lng"`        // ST_Y of coords
	OwnerID   int       `gorm:"column:owner_id"`   // Joined owner ID
	OwnerName string    `gorm:"column:owner_name"` // Joined owner name
}

func (r catRow) toCat() domain.Cat {
	return domain.Cat{
		CatID:     r.CatID,
		CatName:   r.CatName,
		Weight:    r.Weight,
		Filename:  r.Filename,
		Birthdate: r.Birthdate.Format(dateLayout), // Back to YYYY-MM-DD
		Coords:    domain.Coords{Lat: r.Lat, Lng: r.Lng},
		Owner:     domain.Owner{UserID: r.OwnerID, UserName: r.OwnerName},
	}
}

// CatStore persists cats over the shared pool.
type CatStore struct {
	db *gorm.DB // Shared connection pool
}

// NewCatStore returns a CatStore over db
func NewCatStore(db *gorm.DB) *CatStore {
	return &CatStore{db: db}
}

// ListCats returns every cat with its owner. An empty table is reported as not found.
func (s *CatStore) ListCats(ctx context.Context) ([]domain.Cat, error) {
	var rows []catRow
	if err := s.db.WithContext(ctx).Raw(catSelect).Scan(&rows).Error; err != nil {
		return nil, classify(err)
	}
	if len(rows) == 0 {
		return nil, apperror.NotFound("No cats found")
	}
	cats := make([]domain.Cat, len(rows))
	for i, r := range rows {
		cats[i] = r.toCat()
	}
	return cats, nil
}

func (s *CatStore) GetCat(ctx context.Context, catID int) (domain.Cat, error) {
	var rows []catRow
	if err := s.db.WithContext(ctx).Raw(catSelect+"\n\tWHERE sssf_cat.cat_id = ?", catID).Scan(&rows).Error; err != nil {
		return domain.Cat{}, classify(err)
	}
	if len(rows) == 0 {
		return domain.Cat{}, apperror.NotFound("Cat not found")
	}
	return rows[0].toCat(), nil
}

// CreateCat inserts a cat; coords are stored as a single POINT(lat, lng).
func (s *CatStore) CreateCat(ctx context.Context, data domain.CatInput) (domain.Message, error) {
	const query = `
		INSERT INTO sssf_cat (cat_name, weight, owner, filename, birthdate, coords)
		VALUES (?, ?, ?, ?, ?, POINT(?, ?))`
	res := s.db.WithContext(ctx).Exec(query,
		data.CatName,
		data.Weight,
		data.Owner,
		data.Filename,
		data.Birthdate,
		data.Coords.Lat,
		data.Coords.Lng,
	)
	if res.Error != nil {
		return domain.Message{}, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Message{}, apperror.Persistence("No cats added")
	}
	return domain.Message{Message: "Cat added"}, nil
}

// UpdateCat applies a partial update in a single statement scoped by OwnerScope.
// A missing row and a row owned by someone else fail identically.
func (s *CatStore) UpdateCat(ctx context.Context, catID int, data domain.CatUpdate, who domain.Identity) (domain.Message, error) {
	if data.Empty() {
		return domain.Message{}, apperror.BadRequest("Nothing to update")
	}
	res := s.db.WithContext(ctx).
		Table(catTable).
		Where("cat_id = ?", catID).
		Scopes(OwnerScope(who)).  // Ownership checked in the same statement
		Updates(catColumns(data)) // Only the columns that were sent
	if res.Error != nil {
		return domain.Message{}, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Message{}, apperror.Persistence("No cats updated or you do not have permission") // Missing and foreign rows look alike
	}
	return domain.Message{Message: "Cat updated"}, nil
}

// DeleteCat removes a cat by id without an ownership predicate.
func (s *CatStore) DeleteCat(ctx context.Context, catID int) (domain.Message, error) {
	res := s.db.WithContext(ctx).Exec("DELETE FROM sssf_cat WHERE cat_id = ?", catID)
	if res.Error != nil {
		return domain.Message{}, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Message{}, apperror.Persistence("No cats deleted")
	}
	return domain.Message{Message: "Cat deleted"}, nil
}

// catColumns maps the set fields of an update to column names
func catColumns(data domain.CatUpdate) map[string]any {
	cols := map[string]any{}
	if data.CatName != nil {
		cols["cat_name"] = *data.CatName
	}
	if data.Weight != nil {
		cols["weight"] = *data.Weight
	}
	if data.Birthdate != nil {
		cols["birthdate"] = *data.Birthdate
	}
	if data.Coords != nil {
		cols["coords"] = gorm.Expr("POINT(?, ?)", data.Coords.Lat, data.Coords.Lng)
	}
	return cols
}
