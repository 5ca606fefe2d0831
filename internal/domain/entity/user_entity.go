package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles assignable at registration. RoleAdmin exists only through seeding.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// User is the aggregate root for the auth domain.
// Password holds a bcrypt hash and is never serialized to JSON.
// ResetPasswordToken stores only the sha256 of the raw token so a leaked
// database does not reveal usable reset tokens.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Password            string             `bson:"password" json:"-"`
	Role                string             `bson:"role" json:"role"`
	ResetPasswordToken  string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire time.Time          `bson:"resetPasswordExpire,omitempty" json:"-"`
	CreatedAt           time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}
