package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/pkg/crypto"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleMainAdmin  Role = "main_admin"
	RoleSportAdmin Role = "sport_admin"
)

// DefaultRole is assigned when registration does not name a role.
const DefaultRole = RoleSportAdmin

// rank orders roles so that a higher rank holds every capability of a lower one.
var roleRank = map[Role]int{
	RoleSportAdmin: 1,
	RoleMainAdmin:  2,
}

// ParseRole validates a textual role. An empty value yields DefaultRole.
func ParseRole(value string) (Role, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultRole, nil
	}
	role := Role(value)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", value)
	}
	return role, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Includes reports whether r carries every capability of other.
func (r Role) Includes(other Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	want, ok := roleRank[other]
	if !ok {
		return false
	}
	return have >= want
}

// User is an admin account able to sign in to the panel.
type User struct {
	BaseModel

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Role Role `gorm:"type:varchar(32);not null;index" json:"role"`

	// AssignedSports and SportNames are both ownership keys for sport admins;
	// a match on either grants access. SportNames covers sports that predate
	// id based assignment.
	AssignedSports []Sport                     `gorm:"many2many:user_sports;" json:"-"`
	SportNames     datatypes.JSONSlice[string] `json:"sportNames"`

	IsActive  bool       `gorm:"not null" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	pendingPassword string
}

// SetPassword stages a plaintext secret. It is hashed when the user is saved;
// saves without a staged secret leave the stored hash untouched.
func (u *User) SetPassword(plain string) {
	u.pendingPassword = plain
}

// BeforeSave hashes a staged secret exactly once.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.pendingPassword == "" {
		return nil
	}
	hashed, err := crypto.HashPassword(u.pendingPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = hashed
	u.pendingPassword = ""
	return nil
}

// CheckPassword reports whether candidate matches the stored hash.
func (u *User) CheckPassword(candidate string) bool {
	if u == nil {
		return false
	}
	return crypto.VerifyPassword(u.Password, candidate)
}

// IsMainAdmin reports whether the user holds unrestricted access.
func (u *User) IsMainAdmin() bool {
	return u != nil && u.Role.Includes(RoleMainAdmin)
}

// IsAdmin reports whether the user holds any admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role.Includes(RoleSportAdmin)
}

// AssignedSportIDs lists the ids of sports assigned by reference.
func (u *User) AssignedSportIDs() []string {
	ids := make([]string, 0, len(u.AssignedSports))
	for _, sport := range u.AssignedSports {
		ids = append(ids, sport.ID)
	}
	return ids
}

// HasSportID reports whether sportID is among the assigned sport references.
func (u *User) HasSportID(sportID string) bool {
	sportID = strings.TrimSpace(sportID)
	if sportID == "" {
		return false
	}
	for _, sport := range u.AssignedSports {
		if sport.ID == sportID {
			return true
		}
	}
	return false
}

// HasSportName reports whether name is in the sport name list. Matching is exact
// after trimming.
func (u *User) HasSportName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, candidate := range u.SportNames {
		if strings.TrimSpace(candidate) == name {
			return true
		}
	}
	return false
}
