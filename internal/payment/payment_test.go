package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	for _, valid := range []string{"cash_on_delivery", "credit_card", "bank_transfer", "mobile_wallet"} {
		m, err := ParseMethod(valid)
		assert.NoError(t, err)
		assert.Equal(t, Method(valid), m)
	}

	_, err := ParseMethod("cheque")
	assert.ErrorIs(t, err, ErrUnknownMethod)

	_, err = ParseMethod("")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestMethod_Manual(t *testing.T) {
	assert.True(t, MethodBankTransfer.Manual())
	assert.True(t, MethodMobileWallet.Manual())
	assert.False(t, MethodCashOnDelivery.Manual())
	assert.False(t, MethodCreditCard.Manual())
}

func TestInstructions(t *testing.T) {
	t.Run("AmountTemplated", func(t *testing.T) {
		lines := Instructions(MethodMobileWallet, 1234.50)
		require.NotEmpty(t, lines)
		assert.Contains(t, lines[0], "1234.50")
		for _, line := range lines {
			assert.NotContains(t, line, "{{amount}}")
		}
	})

	t.Run("EveryMethodHasInstructions", func(t *testing.T) {
		for _, m := range []Method{MethodCashOnDelivery, MethodCreditCard, MethodBankTransfer, MethodMobileWallet} {
			assert.NotEmpty(t, Instructions(m, 100))
		}
	})

	t.Run("UnknownMethodEmpty", func(t *testing.T) {
		assert.Empty(t, Instructions(Method("cheque"), 100))
	})
}
