package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Mobile        string             `json:"mobile" bson:"mobile"`
	Gender        string             `json:"gender" bson:"gender"`
	PasswordHash  string             `json:"-" bson:"password_hash"`
	Role          string             `json:"role" bson:"role"`
	IsVerified    bool               `json:"is_verified" bson:"is_verified"`
	IsPaymentDone bool               `json:"is_payment_done" bson:"is_payment_done"`
	ProfileID     primitive.ObjectID `json:"profile_id,omitempty" bson:"profile_id,omitempty"`

	ResetOTP       string    `json:"-" bson:"reset_otp,omitempty"`
	ResetOTPExpiry time.Time `json:"-" bson:"reset_otp_expiry,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`

	// Profile is populated by the auth gate and detail lookups; never stored
	// inside the user document.
	Profile *Profile `json:"profile,omitempty" bson:"-"`
}

// UserDetails is the owner block attached to admin profile listings. No
// password hash, no OTP state.
type UserDetails struct {
	ID            primitive.ObjectID `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Mobile        string             `json:"mobile"`
	Gender        string             `json:"gender"`
	IsVerified    bool               `json:"is_verified"`
	IsPaymentDone bool               `json:"is_payment_done"`
	CreatedAt     time.Time          `json:"created_at"`
}

func (u *User) Details() UserDetails {
	return UserDetails{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Mobile:        u.Mobile,
		Gender:        u.Gender,
		IsVerified:    u.IsVerified,
		IsPaymentDone: u.IsPaymentDone,
		CreatedAt:     u.CreatedAt,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Gender   string `json:"gender"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Mobile == "" {
		errors["mobile"] = "Mobile number is required"
	}
	if r.Gender != "Male" && r.Gender != "Female" {
		errors["gender"] = "Gender must be Male or Female"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	} else if len(r.Password) < 6 {
		errors["password"] = "Password must be at least 6 characters"
	}

	return errors
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

func (r *ResetPasswordRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.OTP == "" {
		errors["otp"] = "OTP is required"
	}
	if r.NewPassword == "" {
		errors["new_password"] = "New password is required"
	} else if len(r.NewPassword) < 6 {
		errors["new_password"] = "Password must be at least 6 characters"
	}

	return errors
}
