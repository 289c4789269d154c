package model

import (
	"time"
)

// Booking is one church's reservation of a state/date slot. Field names match
// the documents already stored in the bookings collection.
type Booking struct {
	ID         string    `json:"_id,omitempty" bson:"_id,omitempty"`
	PersonName string    `json:"personName" bson:"personName" validate:"required,max=200"`
	ChurchName string    `json:"churchName" bson:"churchName" validate:"required,max=200"`
	State      string    `json:"state" bson:"state" validate:"required,max=100"`
	Date       Date      `json:"date" bson:"date" validate:"required"`
	Mobile     string    `json:"mobile" bson:"mobile" validate:"required,max=32"`
	Email      string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,max=254"`
	CreatedAt  time.Time `json:"createdAt,omitzero" bson:"createdAt,omitempty"`
}
