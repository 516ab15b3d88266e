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

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrDuplicateUTR    = errors.New("UTR number already submitted")
)

type PaymentService struct {
	paymentsCol *mongo.Collection
	usersCol    *mongo.Collection
	profilesCol *mongo.Collection
}

func NewPaymentService(ctx context.Context, db *mongo.Database) *PaymentService {
	paymentsCol := db.Collection("payments")

	// Uniqueness of the UTR is the one concurrency-sensitive invariant; it
	// lives in the storage layer, not application logic.
	_, _ = paymentsCol.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "utr_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &PaymentService{
		paymentsCol: paymentsCol,
		usersCol:    db.Collection("users"),
		profilesCol: db.Collection("profiles"),
	}
}

func (s *PaymentService) Create(ctx context.Context, userID primitive.ObjectID, req *models.CreatePaymentRequest) (*models.Payment, error) {
	now := time.Now().UTC()
	payment := &models.Payment{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Method:      req.Method,
		UTRNumber:   req.UTRNumber,
		UPIID:       req.UPIID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Status:      models.PaymentStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.paymentsCol.InsertOne(ctx, payment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUTR
		}
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	var payment models.Payment
	if err := s.paymentsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) ListAll(ctx context.Context) ([]models.Payment, error) {
	return s.list(ctx, bson.M{})
}

func (s *PaymentService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Payment, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

func (s *PaymentService) list(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	cur, err := s.paymentsCol.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	payments := make([]models.Payment, 0)
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdateStatus moves a payment to the requested status and applies the
// membership-flag side effects to the linked user and profile.
func (s *PaymentService) UpdateStatus(ctx context.Context, id primitive.ObjectID, req *models.UpdatePaymentStatusRequest) (*models.Payment, error) {
	payment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = s.paymentsCol.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": req.Status, "remarks": req.Remarks, "updated_at": now},
	})
	if err != nil {
		return nil, err
	}
	payment.Status = req.Status
	payment.Remarks = req.Remarks
	payment.UpdatedAt = now

	userFlag, profileFlag := paymentFlagEffects(req.Status)
	if userFlag != nil {
		_, err = s.usersCol.UpdateOne(ctx, bson.M{"_id": payment.UserID}, bson.M{
			"$set": bson.M{"is_payment_done": *userFlag, "updated_at": now},
		})
		if err != nil {
			return nil, err
		}
	}
	if profileFlag != nil {
		_, err = s.profilesCol.UpdateOne(ctx, bson.M{"user_id": payment.UserID}, bson.M{
			"$set": bson.M{"is_payment_done": *profileFlag, "updated_at": now},
		})
		if err != nil {
			return nil, err
		}
	}

	return payment, nil
}

// paymentFlagEffects maps a status transition to the is_payment_done updates
// for the linked user and profile. Verification flips both on; rejection
// clears the user flag only and leaves the profile untouched.
func paymentFlagEffects(status string) (userFlag, profileFlag *bool) {
	switch status {
	case models.PaymentStatusVerified:
		t := true
		return &t, &t
	case models.PaymentStatusRejected:
		f := false
		return &f, nil
	default:
		return nil, nil
	}
}

func (s *PaymentService) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.paymentsCol.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
