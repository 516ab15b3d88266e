package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/vivahmilan/backend/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileService struct {
	profilesCol *mongo.Collection
	usersCol    *mongo.Collection
}

func NewProfileService(ctx context.Context, db *mongo.Database) *ProfileService {
	profilesCol := db.Collection("profiles")

	_, _ = profilesCol.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &ProfileService{
		profilesCol: profilesCol,
		usersCol:    db.Collection("users"),
	}
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var prof models.Profile
	if err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &prof, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	var prof models.Profile
	if err := s.profilesCol.FindOne(ctx, bson.M{"_id": id}).Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &prof, nil
}

// Upsert merges the validated input into the caller's profile, appends any
// newly uploaded image URLs and recomputes completion. The profile is created
// on the fly for accounts that somehow lost theirs.
func (s *ProfileService) Upsert(ctx context.Context, userID primitive.ObjectID, in *models.ProfileInput, imageURLs []string) (*models.Profile, error) {
	now := time.Now().UTC()

	prof, err := s.GetByUserID(ctx, userID)
	if err == ErrProfileNotFound {
		prof = &models.Profile{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			CreatedAt: now,
		}
	} else if err != nil {
		return nil, err
	}

	in.ApplyTo(prof)

	// Uploads append to the existing gallery, never replace it.
	for _, u := range imageURLs {
		if strings.TrimSpace(u) != "" {
			prof.Images = append(prof.Images, u)
		}
	}

	prof.RecomputeCompletion()
	prof.UpdatedAt = now

	_, err = s.profilesCol.ReplaceOne(ctx, bson.M{"user_id": userID}, prof, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	return prof, nil
}

// ListForAdmin returns every non-admin-owned profile augmented with the
// fileInfo and userDetails blocks.
func (s *ProfileService) ListForAdmin(ctx context.Context) ([]models.AdminProfileView, error) {
	profiles, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	owners, err := s.ownersByID(ctx, ownerIDs(profiles))
	if err != nil {
		return nil, err
	}
	return shapeAdminViews(profiles, owners), nil
}

// ListForMember returns user-owned profiles excluding admins and the acting
// member's own profile, without augmentation.
func (s *ProfileService) ListForMember(ctx context.Context, actorID primitive.ObjectID) ([]models.Profile, error) {
	profiles, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	owners, err := s.ownersByID(ctx, ownerIDs(profiles))
	if err != nil {
		return nil, err
	}
	return filterForMember(profiles, owners, actorID), nil
}

func (s *ProfileService) listAll(ctx context.Context) ([]models.Profile, error) {
	cur, err := s.profilesCol.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	profiles := make([]models.Profile, 0)
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *ProfileService) ownersByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.usersCol.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, cur.Err()
}

func ownerIDs(profiles []models.Profile) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	return ids
}

// shapeAdminViews drops admin-owned profiles and augments the rest; admin
// accounts never surface in any listing.
func shapeAdminViews(profiles []models.Profile, owners map[primitive.ObjectID]models.User) []models.AdminProfileView {
	views := make([]models.AdminProfileView, 0, len(profiles))
	for _, p := range profiles {
		owner, ok := owners[p.UserID]
		if !ok || owner.Role == models.RoleAdmin {
			continue
		}
		views = append(views, models.AdminProfileView{
			Profile:     p,
			FileInfo:    p.FileInfo(),
			UserDetails: owner.Details(),
		})
	}
	return views
}

// filterForMember keeps user-owned profiles only, minus the actor's own.
func filterForMember(profiles []models.Profile, owners map[primitive.ObjectID]models.User, actorID primitive.ObjectID) []models.Profile {
	out := make([]models.Profile, 0, len(profiles))
	for _, p := range profiles {
		owner, ok := owners[p.UserID]
		if !ok || owner.Role != models.RoleUser {
			continue
		}
		if p.UserID == actorID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// VerifyOwner marks the owning user of a profile as verified.
func (s *ProfileService) VerifyOwner(ctx context.Context, profileID primitive.ObjectID) error {
	prof, err := s.GetByID(ctx, profileID)
	if err != nil {
		return err
	}
	_, err = s.usersCol.UpdateOne(ctx, bson.M{"_id": prof.UserID}, bson.M{
		"$set": bson.M{"is_verified": true, "updated_at": time.Now().UTC()},
	})
	return err
}

func (s *ProfileService) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.profilesCol.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// AdminCreate creates a user together with a pre-filled profile. This is the
// bulk-import path: IsCompleted is stored exactly as sent, not recomputed.
func (s *ProfileService) AdminCreate(ctx context.Context, req *models.AdminCreateProfileRequest) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Mobile:       strings.TrimSpace(req.Mobile),
		Gender:       req.Gender,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	prof := &models.Profile{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Images:    req.Images,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.Profile.ApplyTo(prof)
	prof.IsCompleted = req.IsCompleted
	user.ProfileID = prof.ID

	if _, err := s.usersCol.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	if _, err := s.profilesCol.InsertOne(ctx, prof); err != nil {
		return nil, err
	}

	user.Profile = prof
	return user, nil
}
