package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a paid coverage period for one establishment in one
// calendar year. Rows are removed by the database when their establishment
// is deleted.
type Subscription struct {
	ID               uuid.UUID
	EstablishmentID  uuid.UUID
	Year             int
	PaymentReference string
	Status           SubscriptionStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
