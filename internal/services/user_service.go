package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/vivahmilan/backend/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidOTP      = errors.New("invalid or expired OTP")
)

type UserService struct {
	usersCol    *mongo.Collection
	profilesCol *mongo.Collection
	paymentsCol *mongo.Collection
}

func NewUserService(ctx context.Context, db *mongo.Database) *UserService {
	usersCol := db.Collection("users")

	// Best-effort unique index; duplicate registration also fails at insert.
	_, _ = usersCol.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &UserService{
		usersCol:    usersCol,
		profilesCol: db.Collection("profiles"),
		paymentsCol: db.Collection("payments"),
	}
}

// Register creates the user plus its empty profile. The profile exists from
// the moment of registration and is filled incrementally later.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Mobile:       strings.TrimSpace(req.Mobile),
		Gender:       req.Gender,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	profile := &models.Profile{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.ProfileID = profile.ID

	if _, err := s.usersCol.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	if _, err := s.profilesCol.InsertOne(ctx, profile); err != nil {
		// Leave the user without a profile doc; GetByID tolerates that.
		return nil, err
	}

	user.Profile = profile
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

// GetByID loads a user with its profile populated. Implements the auth
// gate's UserLoader.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var profile models.Profile
	if err := s.profilesCol.FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&profile); err == nil {
		user.Profile = &profile
	}

	return &user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.usersCol.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := make([]models.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error {
	res, err := s.usersCol.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_verified": verified, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) SetPaymentFlag(ctx context.Context, id primitive.ObjectID, done bool) error {
	res, err := s.usersCol.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_payment_done": done, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user and cascades to its profile and payments.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.usersCol.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	_, _ = s.profilesCol.DeleteOne(ctx, bson.M{"user_id": id})
	_, _ = s.paymentsCol.DeleteMany(ctx, bson.M{"user_id": id})
	return nil
}

// SetResetOTP generates a 6-digit OTP, stores it with an expiry and returns
// the code for mailing.
func (s *UserService) SetResetOTP(ctx context.Context, email string, ttl time.Duration) (string, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	code, err := generateOTP()
	if err != nil {
		return "", err
	}

	expiry := time.Now().UTC().Add(ttl)
	_, err = s.usersCol.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{"reset_otp": code, "reset_otp_expiry": expiry, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// VerifyOTP checks the stored OTP for exact match and freshness.
func (s *UserService) VerifyOTP(ctx context.Context, email, code string) error {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.ResetOTP == "" || user.ResetOTP != code {
		return ErrInvalidOTP
	}
	if otpExpired(user.ResetOTPExpiry, time.Now().UTC()) {
		return ErrInvalidOTP
	}
	return nil
}

// ResetPassword rehashes the password and clears the OTP fields.
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.VerifyOTP(ctx, email, code); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.usersCol.UpdateOne(ctx,
		bson.M{"email": strings.ToLower(strings.TrimSpace(email))},
		bson.M{
			"$set":   bson.M{"password_hash": string(hashed), "updated_at": time.Now().UTC()},
			"$unset": bson.M{"reset_otp": "", "reset_otp_expiry": ""},
		})
	return err
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func otpExpired(expiry time.Time, now time.Time) bool {
	return now.After(expiry)
}
