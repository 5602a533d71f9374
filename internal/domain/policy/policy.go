// Package policy provides the single capability check applied by every
// application service, replacing per-handler role conditionals.
package policy

import (
	"github.com/foodbridge/backend/internal/domain/identity"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Action identifies a protected operation
type Action string

const (
	ActionDonationUpdate     Action = "donation:update"
	ActionDonationDelete     Action = "donation:delete"
	ActionDonationDeliver    Action = "donation:deliver"
	ActionTaskAssign         Action = "task:assign"
	ActionTaskComplete       Action = "task:complete"
	ActionVolunteerUpdate    Action = "volunteer:update"
	ActionVolunteerSuspend   Action = "volunteer:suspend"
	ActionOrganizationUpdate Action = "organization:update"
	ActionOrganizationVerify Action = "organization:verify"
	ActionUserList           Action = "user:list"
	ActionUserVerify         Action = "user:verify"
)

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == identity.RoleAdmin
}

// Resource describes the entity an action targets. OwnerID is the user who
// owns the entity; it is the zero UUID when ownership does not apply.
type Resource struct {
	OwnerID uuid.UUID
}

// OwnedBy builds a Resource owned by the given user
func OwnedBy(ownerID uuid.UUID) Resource {
	return Resource{OwnerID: ownerID}
}

// adminOnly actions require the admin role regardless of ownership
var adminOnly = map[Action]bool{
	ActionTaskAssign:         true,
	ActionVolunteerSuspend:   true,
	ActionOrganizationVerify: true,
	ActionUserList:           true,
	ActionUserVerify:         true,
}

// ownerOnly actions require the owning user; even admins are excluded
// (an admin must not complete another volunteer's task).
var ownerOnly = map[Action]bool{
	ActionTaskComplete: true,
}

// Authorize decides whether the actor may perform the action on the resource.
// Returns shared.ErrForbidden on refusal, nil on success.
func Authorize(actor Actor, action Action, resource Resource) error {
	if actor.UserID == uuid.Nil {
		return shared.ErrUnauthorized
	}

	if adminOnly[action] {
		if !actor.IsAdmin() {
			return shared.ErrForbidden
		}
		return nil
	}

	if ownerOnly[action] {
		if actor.UserID != resource.OwnerID {
			return shared.ErrForbidden
		}
		return nil
	}

	// Remaining actions are owner-or-admin.
	if actor.IsAdmin() || actor.UserID == resource.OwnerID {
		return nil
	}
	return shared.ErrForbidden
}
