package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vivahmilan/backend/internal/models"
)

type listingFixture struct {
	adminUser   models.User
	memberA     models.User
	memberB     models.User
	profiles    []models.Profile
	owners      map[primitive.ObjectID]models.User
}

func newListingFixture() listingFixture {
	adminUser := models.User{ID: primitive.NewObjectID(), Name: "Moderator", Role: models.RoleAdmin}
	memberA := models.User{ID: primitive.NewObjectID(), Name: "Asha", Email: "asha@example.com", Role: models.RoleUser}
	memberB := models.User{ID: primitive.NewObjectID(), Name: "Bharat", Email: "bharat@example.com", Role: models.RoleUser}

	profiles := []models.Profile{
		{ID: primitive.NewObjectID(), UserID: adminUser.ID},
		{ID: primitive.NewObjectID(), UserID: memberA.ID, Images: []string{"a.jpg"}},
		{ID: primitive.NewObjectID(), UserID: memberB.ID},
	}

	return listingFixture{
		adminUser: adminUser,
		memberA:   memberA,
		memberB:   memberB,
		profiles:  profiles,
		owners: map[primitive.ObjectID]models.User{
			adminUser.ID: adminUser,
			memberA.ID:   memberA,
			memberB.ID:   memberB,
		},
	}
}

func TestShapeAdminViews(t *testing.T) {
	fx := newListingFixture()

	views := shapeAdminViews(fx.profiles, fx.owners)
	require.Len(t, views, 2, "admin-owned profiles are excluded")

	for _, v := range views {
		assert.NotEqual(t, fx.adminUser.ID, v.UserID)
	}

	first := views[0]
	assert.Equal(t, fx.memberA.ID, first.UserID)
	assert.Equal(t, "Asha", first.UserDetails.Name)
	assert.Equal(t, "asha@example.com", first.UserDetails.Email)
	assert.Equal(t, 1, first.FileInfo.ImageCount)
}

func TestShapeAdminViewsSkipsOrphans(t *testing.T) {
	fx := newListingFixture()
	orphan := models.Profile{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}

	views := shapeAdminViews(append(fx.profiles, orphan), fx.owners)
	for _, v := range views {
		assert.NotEqual(t, orphan.ID, v.ID)
	}
}

func TestFilterForMember(t *testing.T) {
	fx := newListingFixture()

	visible := filterForMember(fx.profiles, fx.owners, fx.memberA.ID)
	require.Len(t, visible, 1)
	assert.Equal(t, fx.memberB.ID, visible[0].UserID, "member sees neither admins nor their own profile")

	visible = filterForMember(fx.profiles, fx.owners, fx.memberB.ID)
	require.Len(t, visible, 1)
	assert.Equal(t, fx.memberA.ID, visible[0].UserID)
}
