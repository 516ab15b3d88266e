// Package authz centralizes role-based capability checks so that no handler
// or service branches on the role string directly.
package authz

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vivahmilan/backend/internal/models"
)

type Action string

const (
	BrowseProfiles   Action = "profiles:browse"
	ModerateProfiles Action = "profiles:moderate"
	ManageUsers      Action = "users:manage"
	ManagePayments   Action = "payments:manage"
	ManageAds        Action = "ads:manage"
	ReadInbox        Action = "inbox:read"
	SendMessages     Action = "messages:send"
)

// memberActions are the capabilities every regular member holds. Everything
// else requires the admin role.
var memberActions = map[Action]bool{
	BrowseProfiles: true,
	SendMessages:   true,
}

// Can reports whether the actor may perform the action. Admins can do
// everything; regular members only what memberActions grants.
func Can(actor *models.User, action Action) bool {
	if actor == nil {
		return false
	}
	if actor.Role == models.RoleAdmin {
		return true
	}
	return memberActions[action]
}

// OwnerOrAdmin reports whether the actor owns the resource or holds the
// admin role. Used for profile edits and payment lookups.
func OwnerOrAdmin(actor *models.User, ownerID primitive.ObjectID) bool {
	if actor == nil {
		return false
	}
	if actor.Role == models.RoleAdmin {
		return true
	}
	return actor.ID == ownerID
}
