package model

import "time"

const (
	DefaultSportPrice = 300
	MaxSportPrice     = 100000
)

type Sport struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=50"`
	NameKey   string    `json:"-" bson:"nameKey"`
	Price     int       `json:"price" bson:"price" validate:"gt=0,max=100000"`
	IsActive  bool      `json:"is_active" bson:"isActive"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

type SportCreate struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Price int    `json:"price" validate:"omitempty,gt=0,max=100000"`
}

// SportUpdate carries the fields an admin may change in place; nil means unchanged.
type SportUpdate struct {
	Price    *int  `json:"price,omitempty" validate:"omitempty,gt=0,max=100000"`
	IsActive *bool `json:"is_active,omitempty"`
}

func (u *SportUpdate) IsEmpty() bool {
	return u.Price == nil && u.IsActive == nil
}
