package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validPaymentRequest() CreatePaymentRequest {
	return CreatePaymentRequest{
		Method:      PaymentMethodUPI,
		UTRNumber:   "TXN123",
		UPIID:       "asha@upi",
		Amount:      501,
		PaymentDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreatePaymentRequestValidate(t *testing.T) {
	t.Run("valid UPI payment", func(t *testing.T) {
		req := validPaymentRequest()
		assert.Empty(t, req.Validate())
	})

	t.Run("bank transfer does not need a UPI id", func(t *testing.T) {
		req := validPaymentRequest()
		req.Method = PaymentMethodBank
		req.UPIID = ""
		assert.Empty(t, req.Validate())
	})

	t.Run("UPI without UPI id", func(t *testing.T) {
		req := validPaymentRequest()
		req.UPIID = ""
		assert.Contains(t, req.Validate(), "upi_id")
	})

	t.Run("unknown method", func(t *testing.T) {
		req := validPaymentRequest()
		req.Method = "Cash"
		assert.Contains(t, req.Validate(), "method")
	})

	t.Run("missing UTR", func(t *testing.T) {
		req := validPaymentRequest()
		req.UTRNumber = ""
		assert.Contains(t, req.Validate(), "utr_number")
	})

	t.Run("non-positive amount", func(t *testing.T) {
		req := validPaymentRequest()
		req.Amount = 0
		assert.Contains(t, req.Validate(), "amount")
	})

	t.Run("missing date", func(t *testing.T) {
		req := validPaymentRequest()
		req.PaymentDate = time.Time{}
		assert.Contains(t, req.Validate(), "payment_date")
	})
}

func TestUpdatePaymentStatusRequestValidate(t *testing.T) {
	for _, status := range []string{PaymentStatusPending, PaymentStatusVerified, PaymentStatusRejected} {
		req := UpdatePaymentStatusRequest{Status: status}
		assert.Empty(t, req.Validate(), status)
	}

	req := UpdatePaymentStatusRequest{Status: "Approved"}
	assert.Contains(t, req.Validate(), "status")
}
