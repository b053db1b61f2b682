package accounts

import (
	"time"

	"github.com/gamingtechpro/storefront-backend/pkg/enums"
)

// Account is a stored customer record. Passwords are kept as entered
// and login compares exact strings; this is local session bookkeeping,
// not a security boundary.
type Account struct {
	ID        string            `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Password  string            `json:"password"`
	Role      enums.AccountRole `json:"role"`
	CreatedAt time.Time         `json:"created_at"`
}

// Profile is the customer-facing view of an account. It never carries
// the password.
type Profile struct {
	ID        string            `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Role      enums.AccountRole `json:"role"`
	CreatedAt time.Time         `json:"created_at"`
}

func (a Account) Profile() Profile {
	return Profile{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

// ActivityEntry is one line of the per-account activity log.
type ActivityEntry struct {
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}
