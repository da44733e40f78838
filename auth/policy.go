package auth

import (
	"github.com/milassets/backend/models"
)

// CanAccess is the single base-scoping rule: admins see every base, everyone
// else only records of their own base. Handlers call this for reads and
// writes alike.
func CanAccess(actor *models.User, recordBase string) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return actor.Base == recordBase
}

// HasRole reports whether the actor's role is in the allow-list. An empty
// list means no role restriction.
func HasRole(actor *models.User, allowed ...models.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, role := range allowed {
		if actor.Role == role {
			return true
		}
	}
	return false
}
