package domain

// Coords is a geographic point decomposed at the API boundary
type Coords struct {
	Lat float64 `json:"lat"` // Latitude
	Lng float64 `json:"lng"` // Longitude
}

// Owner is the summary of the owning user embedded in cat reads
type Owner struct {
	UserID   int    `json:"user_id"`   // Owner user ID
	UserName string `json:"user_name"` // Owner display name
}

// Cat is the read-side view of a cat with its owner resolved
type Cat struct {
	CatID     int     `json:"cat_id"`             // Primary key
	CatName   string  `json:"cat_name"`           // Name of the cat
	Weight    float64 `json:"weight"`             // Weight in kilograms
	Filename  *string `json:"filename,omitempty"` // Uploaded image, if any
	Birthdate string  `json:"birthdate"`          // Birthdate as YYYY-MM-DD
	Coords    Coords  `json:"coords"`             // Location
	Owner     Owner   `json:"owner"`              // Denormalized owner summary
}

// CatInput is the write-side shape of a cat insert; Owner is only a user ID
type CatInput struct {
	CatName   string  // Name of the cat
	Weight    float64 // Weight in kilograms
	Owner     int     // Owning user ID
	Filename  *string // Uploaded image, nil when no file was attached
	Birthdate string  // Birthdate as YYYY-MM-DD
	Coords    Coords  // Location
}

// CatUpdate carries the columns a cat update may touch; nil fields are left unchanged
type CatUpdate struct {
	CatName   *string  // New name
	Weight    *float64 // New weight
	Birthdate *string  // New birthdate
	Coords    *Coords  // New location
}

// Empty reports whether the update would change nothing
func (u CatUpdate) Empty() bool {
	return u.CatName == nil && u.Weight == nil && u.Birthdate == nil && u.Coords == nil
}
