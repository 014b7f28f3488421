package payment

import (
	"fmt"
	"strings"
)

// instructionMap holds per-channel payment instructions shown to the buyer
// after checkout. {{amount}} is replaced with the order total.
var instructionMap = map[Method][]string{
	MethodCashOnDelivery: {
		"Your order will be delivered to the shipping address",
		"Keep {{amount}} BDT in cash ready when the courier arrives",
		"Pay the courier directly and collect the receipt",
		"If exact change is not available, keep a close denomination ready",
	},

	MethodBankTransfer: {
		"Transfer {{amount}} BDT to our bank account (details in your order confirmation)",
		"Use your order number as the transfer remark",
		"Keep the bank transaction ID from your receipt",
		"Submit the transaction ID with your order; our team verifies it within 24 hours",
	},

	MethodMobileWallet: {
		"Send {{amount}} BDT via bKash, Nagad or Rocket to our merchant wallet",
		"Use the Payment option, not Send Money",
		"Keep the TrxID from the confirmation SMS",
		"Submit the TrxID with your order; our team verifies it within 24 hours",
	},

	MethodCreditCard: {
		"Your card is charged {{amount}} BDT at checkout",
		"A receipt is emailed once the charge settles",
	},
}

// Instructions renders the buyer-facing payment steps for the given method
// and order total.
func Instructions(m Method, amount float64) []string {
	tmpl, ok := instructionMap[m]
	if !ok {
		return nil
	}

	formatted := fmt.Sprintf("%.2f", amount)
	out := make([]string, len(tmpl))
	for i, line := range tmpl {
		out[i] = strings.ReplaceAll(line, "{{amount}}", formatted)
	}
	return out
}
