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

var ErrContactNotFound = errors.New("contact not found")

// InboxService stores the two kinds of inbound records: member messages and
// public contact-form submissions.
type InboxService struct {
	messagesCol *mongo.Collection
	contactsCol *mongo.Collection
}

func NewInboxService(db *mongo.Database) *InboxService {
	return &InboxService{
		messagesCol: db.Collection("messages"),
		contactsCol: db.Collection("contacts"),
	}
}

func (s *InboxService) CreateMessage(ctx context.Context, user *models.User, req *models.CreateMessageRequest) (*models.Message, error) {
	msg := &models.Message{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Sender:    user.Name,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.messagesCol.InsertOne(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *InboxService) ListMessages(ctx context.Context) ([]models.Message, error) {
	cur, err := s.messagesCol.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	messages := make([]models.Message, 0)
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *InboxService) CreateContact(ctx context.Context, req *models.CreateContactRequest) (*models.Contact, error) {
	contact := &models.Contact{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.contactsCol.InsertOne(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *InboxService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	cur, err := s.contactsCol.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	contacts := make([]models.Contact, 0)
	if err := cur.All(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *InboxService) DeleteContact(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.contactsCol.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrContactNotFound
	}
	return nil
}
