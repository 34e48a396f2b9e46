package domain

import (
	"time"

	"github.com/google/uuid"
)

// OwnerID is the opaque identity of the authenticated principal that owns a
// record. It is issued by the identity provider and never parsed.
type OwnerID string

func (o OwnerID) String() string { return string(o) }

// IsZero reports whether no caller identity is present.
func (o OwnerID) IsZero() bool { return o == "" }

// Establishment is a physical facility for which a user tracks safety incidents.
type Establishment struct {
	ID                  uuid.UUID
	UserID              OwnerID
	Name                string
	Address             string
	City                string
	State               string
	Zip                 string
	NAICSCode           *string
	IndustryDescription *string
	AverageEmployees    int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Limits for establishment attributes.
const (
	MaxNameLength                = 255
	MaxAddressLength             = 500
	MaxCityLength                = 100
	MaxIndustryDescriptionLength = 500
	MaxAverageEmployees          = 999_999
)
