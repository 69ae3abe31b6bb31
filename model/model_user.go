package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleFarmer  = "farmer"
	RoleOfficer = "officer"
	RoleAdmin   = "admin"
)

type User struct {
	ID           bson.ObjectID `json:"id"        bson:"_id,omitempty"`
	Name         string        `json:"name"      bson:"name"`
	Phone        string        `json:"phone"     bson:"phone"`
	PasswordHash string        `json:"-"         bson:"password_hash"`
	Role         string        `json:"role"      bson:"role"`
	District     string        `json:"district,omitempty" bson:"district,omitempty"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`
}

// IsOfficer reports whether the user may perform officer-only actions.
func (u *User) IsOfficer() bool {
	return u.Role == RoleOfficer || u.Role == RoleAdmin
}
