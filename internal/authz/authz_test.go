package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vivahmilan/backend/internal/models"
)

func TestCan(t *testing.T) {
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	member := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}

	adminOnly := []Action{ModerateProfiles, ManageUsers, ManagePayments, ManageAds, ReadInbox}
	for _, action := range adminOnly {
		assert.True(t, Can(admin, action), "admin should hold %s", action)
		assert.False(t, Can(member, action), "member must not hold %s", action)
	}

	for _, action := range []Action{BrowseProfiles, SendMessages} {
		assert.True(t, Can(admin, action))
		assert.True(t, Can(member, action))
	}

	assert.False(t, Can(nil, BrowseProfiles), "nil actor holds nothing")
}

func TestOwnerOrAdmin(t *testing.T) {
	ownerID := primitive.NewObjectID()
	owner := &models.User{ID: ownerID, Role: models.RoleUser}
	other := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}

	assert.True(t, OwnerOrAdmin(owner, ownerID))
	assert.True(t, OwnerOrAdmin(admin, ownerID))
	assert.False(t, OwnerOrAdmin(other, ownerID))
	assert.False(t, OwnerOrAdmin(nil, ownerID))
}
