package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course belongs to exactly one bootcamp; the course owns the foreign key.
type Course struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Weeks                int                `bson:"weeks" json:"weeks"`
	Tuition              int                `bson:"tuition" json:"tuition"`
	MinimumSkill         string             `bson:"minimumSkill" json:"minimum_skill"`
	ScholarshipAvailable bool               `bson:"scholarshipAvailable" json:"scholarship_available"`
	Bootcamp             primitive.ObjectID `bson:"bootcamp" json:"bootcamp"`
	User                 primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}
