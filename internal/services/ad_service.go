package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vivahmilan/backend/internal/models"
)

var ErrAdNotFound = errors.New("ad not found")

type AdService struct {
	adsCol *mongo.Collection
}

func NewAdService(db *mongo.Database) *AdService {
	return &AdService{adsCol: db.Collection("ads")}
}

func (s *AdService) Create(ctx context.Context, in *models.AdInput, imageURL string) (*models.Ad, error) {
	now := time.Now().UTC()
	ad := &models.Ad{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    imageURL,
		IsActive:    true,
		Positions:   in.Positions,
		Pages:       in.Pages,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.adsCol.InsertOne(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *AdService) ListAll(ctx context.Context) ([]models.Ad, error) {
	cur, err := s.adsCol.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ads := make([]models.Ad, 0)
	if err := cur.All(ctx, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

// ListForPage returns active ads targeting the given public page.
func (s *AdService) ListForPage(ctx context.Context, page string) ([]models.Ad, error) {
	cur, err := s.adsCol.Find(ctx, bson.M{"is_active": true, "pages": page})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ads := make([]models.Ad, 0)
	if err := cur.All(ctx, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

func (s *AdService) Update(ctx context.Context, id primitive.ObjectID, in *models.AdInput, imageURL string) (*models.Ad, error) {
	set := bson.M{
		"title":       in.Title,
		"description": in.Description,
		"positions":   in.Positions,
		"pages":       in.Pages,
		"updated_at":  time.Now().UTC(),
	}
	if imageURL != "" {
		set["image_url"] = imageURL
	}

	res, err := s.adsCol.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrAdNotFound
	}

	var ad models.Ad
	if err := s.adsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// Toggle flips the active flag and returns the new state.
func (s *AdService) Toggle(ctx context.Context, id primitive.ObjectID) (*models.Ad, error) {
	var ad models.Ad
	if err := s.adsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&ad); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrAdNotFound
		}
		return nil, err
	}

	ad.IsActive = !ad.IsActive
	ad.UpdatedAt = time.Now().UTC()
	_, err := s.adsCol.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_active": ad.IsActive, "updated_at": ad.UpdatedAt},
	})
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (s *AdService) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.adsCol.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAdNotFound
	}
	return nil
}
