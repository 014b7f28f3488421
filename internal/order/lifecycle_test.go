package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		ok   bool
	}{
		{"PendingToConfirmed", StatusPending, StatusConfirmed, true},
		{"ConfirmedToProcessing", StatusConfirmed, StatusProcessing, true},
		{"ProcessingToShipped", StatusProcessing, StatusShipped, true},
		{"ShippedToDelivered", StatusShipped, StatusDelivered, true},
		{"SkipAhead", StatusPending, StatusShipped, true},
		{"PendingStraightToDelivered", StatusPending, StatusDelivered, true},

		{"Backwards", StatusShipped, StatusConfirmed, false},
		{"SameState", StatusProcessing, StatusProcessing, false},
		{"BackToPending", StatusConfirmed, StatusPending, false},

		{"CancelFromPending", StatusPending, StatusCancelled, true},
		{"CancelFromShipped", StatusShipped, StatusCancelled, true},
		{"CancelFromDelivered", StatusDelivered, StatusCancelled, false},
		{"DoubleCancel", StatusCancelled, StatusCancelled, false},
		{"CancelFromReturned", StatusReturned, StatusCancelled, false},

		{"ReturnFromDelivered", StatusDelivered, StatusReturned, true},
		{"ReturnFromShipped", StatusShipped, StatusReturned, false},
		{"ReturnFromCancelled", StatusCancelled, StatusReturned, false},

		{"LeaveCancelled", StatusCancelled, StatusConfirmed, false},
		{"LeaveReturned", StatusReturned, StatusProcessing, false},
		{"UnknownTarget", StatusPending, Status("LOST"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusReturned))
	assert.True(t, IsTerminal(StatusDelivered))
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusShipped))
}

func TestValidatePaymentTransition(t *testing.T) {
	assert.NoError(t, ValidatePaymentTransition(PaymentPendingVerification, PaymentPaid))
	assert.NoError(t, ValidatePaymentTransition(PaymentPendingVerification, PaymentFailed))

	assert.ErrorIs(t, ValidatePaymentTransition(PaymentPending, PaymentPaid), ErrInvalidTransition)
	assert.ErrorIs(t, ValidatePaymentTransition(PaymentPaid, PaymentFailed), ErrInvalidTransition)
	assert.ErrorIs(t, ValidatePaymentTransition(PaymentFailed, PaymentPaid), ErrInvalidTransition)
	assert.ErrorIs(t, ValidatePaymentTransition(PaymentPendingVerification, PaymentPending), ErrInvalidTransition)
	assert.ErrorIs(t, ValidatePaymentTransition(PaymentPendingVerification, PaymentRefunded), ErrInvalidTransition)
}
