package user

import (
	"errors"
	"strings"

	"github.com/frahmantamala/shift-tracker/internal"
	userDatamodel "github.com/frahmantamala/shift-tracker/internal/core/datamodel/user"
)

// User is a person allowed to sign in with a static public identifier.
type User struct {
	ID       int64         `json:"id"`
	UniqueID string        `json:"unique_id"`
	Name     string        `json:"name"`
	Role     internal.Role `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == internal.RoleAdmin
}

var (
	ErrNotFound      = errors.New("user not found")
	ErrInvalidRole   = errors.New("invalid role")
	ErrMissingFields = errors.New("unique_id and name are required")
)

// NewUser normalises and checks the fields of a user created out of band.
func NewUser(uniqueID, name string, role internal.Role) (*User, error) {
	uniqueID = strings.TrimSpace(uniqueID)
	name = strings.TrimSpace(name)
	if uniqueID == "" || name == "" {
		return nil, ErrMissingFields
	}
	if role == "" {
		role = internal.RoleDriver
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	return &User{UniqueID: uniqueID, Name: name, Role: role}, nil
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:       u.ID,
		UniqueID: u.UniqueID,
		Name:     u.Name,
		Role:     string(u.Role),
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:       u.ID,
		UniqueID: u.UniqueID,
		Name:     u.Name,
		Role:     internal.Role(u.Role),
	}
}
