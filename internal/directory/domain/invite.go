package domain

import "time"

// InviteStatus is the lifecycle state of an invite. An invite leaves
// Active exactly once and never returns. Consumed and Cancelled both
// block registration but stay distinguishable in listings.
type InviteStatus string

const (
	InviteActive    InviteStatus = "active"
	InviteConsumed  InviteStatus = "consumed"
	InviteCancelled InviteStatus = "cancelled"
)

type Invite struct {
	Code      string // random UUID, primary key
	Status    InviteStatus
	CreatedBy string // admin ID
	UsedBy    string // account ID, empty until consumed
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Usable reports whether a registration may still consume the invite.
func (i Invite) Usable() bool {
	return i.Status == InviteActive
}
