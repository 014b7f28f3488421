package payment

import (
	"errors"
	"fmt"
)

// Method is a closed set of payment channels. Manual channels settle
// out-of-band and are confirmed by an admin against a customer-supplied
// transaction reference.
type Method string

const (
	MethodCashOnDelivery Method = "cash_on_delivery"
	MethodCreditCard     Method = "credit_card"
	MethodBankTransfer   Method = "bank_transfer"
	MethodMobileWallet   Method = "mobile_wallet"
)

// MinReferenceLen is the minimum length of a transaction reference for
// manual channels.
const MinReferenceLen = 5

var ErrUnknownMethod = errors.New("unknown payment method")

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodCashOnDelivery, MethodCreditCard, MethodBankTransfer, MethodMobileWallet:
		return Method(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Manual reports whether the method requires out-of-band settlement and
// admin verification.
func (m Method) Manual() bool {
	return m == MethodBankTransfer || m == MethodMobileWallet
}
