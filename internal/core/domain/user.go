package domain

import "time"

// Geodata is the location data derived from a ZIP code. It is never stored
// on its own; it is folded into a User at creation or on a zip change.
type Geodata struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// User is the core entity. Latitude, longitude and timezone are always
// derived from ZipCode via the geodata client — clients never supply them.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	ZipCode   string    `json:"zipCode" bson:"zip_code"`
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
	Timezone  string    `json:"timezone" bson:"timezone"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// UserPatch is an explicit partial update. Nil pointers mean "leave the
// field untouched"; UpdatedAt is always applied.
type UserPatch struct {
	Name      *string
	ZipCode   *string
	Latitude  *float64
	Longitude *float64
	Timezone  *string
	UpdatedAt time.Time
}

// Apply merges the patch into a copy of u and returns it.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.ZipCode != nil {
		u.ZipCode = *p.ZipCode
	}
	if p.Latitude != nil {
		u.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		u.Longitude = *p.Longitude
	}
	if p.Timezone != nil {
		u.Timezone = *p.Timezone
	}
	u.UpdatedAt = p.UpdatedAt
	return u
}
