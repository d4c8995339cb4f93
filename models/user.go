package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleContractor Role = "contractor"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleContractor
}

// User is the identity record shared with the auth service. Accounts are
// created there; this service only reads them and edits basic info.
type User struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_users_email"`
	Phone     *string   `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	Role      Role      `json:"role" db:"role" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// UserPatch is a sparse update of a user's basic info.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (p UserPatch) Columns() map[string]any {
	columns := make(map[string]any)
	if p.Name != nil {
		columns["name"] = *p.Name
	}
	if p.Email != nil {
		columns["email"] = *p.Email
	}
	if p.Phone != nil {
		columns["phone"] = *p.Phone
	}
	return columns
}

// ContractorProfile holds a contractor's trade details.
type ContractorProfile struct {
	ID             uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID                   `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_contractor_profiles_user_id"`
	Skills         datatypes.JSONSlice[string] `json:"skills" db:"skills" gorm:"type:jsonb;not null"`
	Experience     int                         `json:"experience" db:"experience" gorm:"not null"`
	Certifications datatypes.JSONSlice[string] `json:"certifications" db:"certifications" gorm:"type:jsonb;not null"`
	CreatedAt      time.Time                   `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time                   `json:"updatedAt" db:"updated_at"`
}

func (c *ContractorProfile) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Skills == nil {
		c.Skills = datatypes.JSONSlice[string]{}
	}
	if c.Certifications == nil {
		c.Certifications = datatypes.JSONSlice[string]{}
	}
	return nil
}

// ContractorProfilePatch is a sparse profile update.
type ContractorProfilePatch struct {
	Skills         *[]string `json:"skills"`
	Experience     *int      `json:"experience"`
	Certifications *[]string `json:"certifications"`
}

func (p ContractorProfilePatch) Apply(profile *ContractorProfile) {
	if p.Skills != nil {
		profile.Skills = datatypes.JSONSlice[string](*p.Skills)
	}
	if p.Experience != nil {
		profile.Experience = *p.Experience
	}
	if p.Certifications != nil {
		profile.Certifications = datatypes.JSONSlice[string](*p.Certifications)
	}
}

// ContractorIdentity is the read-side join of a user and their profile used
// when listing bids and contractors.
type ContractorIdentity struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone,omitempty"`
	Skills         []string  `json:"skills"`
	Experience     int       `json:"experience"`
	Certifications []string  `json:"certifications"`
}
