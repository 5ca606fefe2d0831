package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is a GeoJSON point with the address parts the geocoder resolved.
type Location struct {
	Type             string    `bson:"type" json:"type"`
	Coordinates      []float64 `bson:"coordinates" json:"coordinates"` // [lng, lat]
	FormattedAddress string    `bson:"formattedAddress,omitempty" json:"formatted_address,omitempty"`
	Street           string    `bson:"street,omitempty" json:"street,omitempty"`
	City             string    `bson:"city,omitempty" json:"city,omitempty"`
	State            string    `bson:"state,omitempty" json:"state,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Country          string    `bson:"country,omitempty" json:"country,omitempty"`
}

// Bootcamp is a directory entry. Courses reference it by ID; deleting a
// bootcamp removes its courses at the repository boundary.
type Bootcamp struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description" json:"description"`
	Website       string             `bson:"website,omitempty" json:"website,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Location      Location           `bson:"location,omitempty" json:"location,omitempty"`
	Careers       []string           `bson:"careers" json:"careers"`
	AverageCost   int                `bson:"averageCost,omitempty" json:"average_cost,omitempty"`
	Photo         string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Housing       bool               `bson:"housing" json:"housing"`
	JobAssistance bool               `bson:"jobAssistance" json:"job_assistance"`
	JobGuarantee  bool               `bson:"jobGuarantee" json:"job_guarantee"`
	AcceptGi      bool               `bson:"acceptGi" json:"accept_gi"`
	User          primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}
