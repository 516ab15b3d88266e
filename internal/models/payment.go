package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentMethodUPI  = "UPI"
	PaymentMethodBank = "Bank Transfer"

	PaymentStatusPending  = "Pending"
	PaymentStatusVerified = "Verified"
	PaymentStatusRejected = "Rejected"
)

// Payment is a user-submitted payment claim. UTRNumber is globally unique.
type Payment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id"`
	Method      string             `json:"method" bson:"method"`
	UTRNumber   string             `json:"utr_number" bson:"utr_number"`
	UPIID       string             `json:"upi_id" bson:"upi_id,omitempty"`
	Amount      float64            `json:"amount" bson:"amount"`
	PaymentDate time.Time          `json:"payment_date" bson:"payment_date"`
	Status      string             `json:"status" bson:"status"`
	Remarks     string             `json:"remarks" bson:"remarks,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type CreatePaymentRequest struct {
	Method      string    `json:"method"`
	UTRNumber   string    `json:"utr_number"`
	UPIID       string    `json:"upi_id"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
}

type UpdatePaymentStatusRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

func (r *CreatePaymentRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Method != PaymentMethodUPI && r.Method != PaymentMethodBank {
		errors["method"] = "Method must be UPI or Bank Transfer"
	}
	if r.UTRNumber == "" {
		errors["utr_number"] = "UTR number is required"
	}
	// UPI id only matters for UPI payments.
	if r.Method == PaymentMethodUPI && r.UPIID == "" {
		errors["upi_id"] = "UPI ID is required for UPI payments"
	}
	if r.Amount <= 0 {
		errors["amount"] = "Amount must be greater than zero"
	}
	if r.PaymentDate.IsZero() {
		errors["payment_date"] = "Payment date is required"
	}

	return errors
}

func (r *UpdatePaymentStatusRequest) Validate() map[string]string {
	errors := make(map[string]string)

	switch r.Status {
	case PaymentStatusPending, PaymentStatusVerified, PaymentStatusRejected:
	default:
		errors["status"] = "Status must be Pending, Verified or Rejected"
	}

	return errors
}
