package address

import "github.com/google/uuid"

// Address is a saved shipping/billing address in a registered user's
// address book. At checkout a saved address can be referenced by id instead
// of retyping it.
type Address struct {
	ID     uuid.UUID
	UserID uint

	Name  string
	Phone string

	Line1 string
	Line2 *string

	City       string
	PostalCode string
	Country    string

	IsDefault bool
	IsActive  bool
}

type CreateAddressInput struct {
	Name         string
	Phone        string
	Line1        string
	Line2        *string
	City         string
	PostalCode   string
	Country      string
	SetAsDefault bool
}
