package order

import (
	"time"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/payment"
)

// Status is the fulfillment state of an order. Fulfillment and payment
// clearance are independent axes; every combination of the two is legal.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
	StatusReturned   Status = "RETURNED"
)

// PaymentStatus is the clearance state of an order's payment.
// PARTIAL and REFUNDED are reachable in the data model for manual
// administrative adjustment; no operation currently drives them.
type PaymentStatus string

const (
	PaymentPending             PaymentStatus = "PENDING"
	PaymentPendingVerification PaymentStatus = "PENDING_VERIFICATION"
	PaymentPaid                PaymentStatus = "PAID"
	PaymentFailed              PaymentStatus = "FAILED"
	PaymentPartial             PaymentStatus = "PARTIAL"
	PaymentRefunded            PaymentStatus = "REFUNDED"
)

type Address struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
}

// GuestInfo identifies a buyer checking out without an account.
type GuestInfo struct {
	Name        string  `json:"name"`
	Mobile      string  `json:"mobile"`
	Email       *string `json:"email,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
}

// OrderItem is a snapshot of name and price taken at order-creation time.
// It never changes when the underlying product changes; only the admin
// item-edit operation may overwrite it.
type OrderItem struct {
	ID          uint    `json:"id"`
	OrderID     uint    `json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
}

type Order struct {
	ID                uint           `json:"id"`
	OrderNumber       string         `json:"order_number"`
	UserID            *uint          `json:"user_id,omitempty"`
	Guest             *GuestInfo     `json:"guest,omitempty"`
	Items             []OrderItem    `json:"items"`
	ShippingAddress   Address        `json:"shipping_address"`
	BillingAddress    Address        `json:"billing_address"`
	PaymentMethod     payment.Method `json:"payment_method"`
	PaymentReference  *string        `json:"payment_reference,omitempty"`
	PaymentVerifiedAt *time.Time     `json:"payment_verified_at,omitempty"`
	PaymentVerifiedBy *uint          `json:"payment_verified_by,omitempty"`
	PaymentNote       *string        `json:"payment_note,omitempty"`
	Notes             *string        `json:"notes,omitempty"`
	Subtotal          float64        `json:"subtotal"`
	Shipping          float64        `json:"shipping"`
	Tax               float64        `json:"tax"`
	Total             float64        `json:"total"`
	Status            Status         `json:"status"`
	PaymentStatus     PaymentStatus  `json:"payment_status"`
	CancelReason      *string        `json:"cancel_reason,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type SortField string

const (
	SortFieldCreatedAt SortField = "CREATED_AT"
	SortFieldTotal     SortField = "TOTAL"
	SortFieldStatus    SortField = "STATUS"
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

type FilterInput struct {
	Search        *string
	Status        *Status
	PaymentStatus *PaymentStatus
	DateFrom      *time.Time
	DateTo        *time.Time
}

type SortInput struct {
	Field     SortField
	Direction SortDirection
}
