package policy

import (
	"testing"

	"github.com/foodbridge/backend/internal/domain/identity"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	ownerID := uuid.New()
	owner := Actor{UserID: ownerID, Role: identity.RoleDonor}
	stranger := Actor{UserID: uuid.New(), Role: identity.RoleDonor}
	admin := Actor{UserID: uuid.New(), Role: identity.RoleAdmin}

	t.Run("owner-or-admin actions", func(t *testing.T) {
		for _, action := range []Action{ActionDonationUpdate, ActionDonationDelete, ActionOrganizationUpdate, ActionVolunteerUpdate} {
			assert.NoError(t, Authorize(owner, action, OwnedBy(ownerID)), "%s by owner", action)
			assert.NoError(t, Authorize(admin, action, OwnedBy(ownerID)), "%s by admin", action)
			assert.ErrorIs(t, Authorize(stranger, action, OwnedBy(ownerID)), shared.ErrForbidden, "%s by stranger", action)
		}
	})

	t.Run("admin-only actions", func(t *testing.T) {
		for _, action := range []Action{ActionTaskAssign, ActionOrganizationVerify, ActionUserList} {
			assert.NoError(t, Authorize(admin, action, Resource{}), "%s by admin", action)
			assert.ErrorIs(t, Authorize(owner, action, OwnedBy(ownerID)), shared.ErrForbidden, "%s by owner", action)
		}
	})

	t.Run("task completion is owner-only", func(t *testing.T) {
		assert.NoError(t, Authorize(owner, ActionTaskComplete, OwnedBy(ownerID)))
		assert.ErrorIs(t, Authorize(admin, ActionTaskComplete, OwnedBy(ownerID)), shared.ErrForbidden)
		assert.ErrorIs(t, Authorize(stranger, ActionTaskComplete, OwnedBy(ownerID)), shared.ErrForbidden)
	})

	t.Run("anonymous actor is unauthorized", func(t *testing.T) {
		assert.ErrorIs(t, Authorize(Actor{}, ActionDonationUpdate, OwnedBy(ownerID)), shared.ErrUnauthorized)
	})
}
