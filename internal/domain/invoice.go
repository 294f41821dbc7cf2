package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
	InvoiceStatusExpired   InvoiceStatus = "EXPIRED"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentMomo PaymentMethod = "momo"
	PaymentCard PaymentMethod = "card"
)

// ParsePaymentMethod maps the wire typeOfPayment value to a known method.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch PaymentMethod(raw) {
	case PaymentCash, PaymentMomo, PaymentCard:
		return PaymentMethod(raw), true
	}
	return "", false
}

// SeatEntry is one per-category headcount row of an invoice. Rows in
// seatAddFor additionally carry the per-head surcharge locked in at
// submission time.
type SeatEntry struct {
	TypeOfPerson    PersonTypeRef `json:"typeOfPersonId"`
	Quantity        int           `json:"quantity"`
	MoneyMoreForOne int64         `json:"moneyMoreForOne,omitempty"`
}

type Invoice struct {
	ID            string        `json:"_id"`
	InvoiceCode   string        `json:"invoiceCode"`
	TransactionID string        `json:"transactionId,omitempty"`
	TourID        string        `json:"tourId"`
	DepartureDate string        `json:"departureDate"`
	SeatFor       []SeatEntry   `json:"seatFor"`
	SeatAddFor    []SeatEntry   `json:"seatAddFor"`
	NameOfUser    string        `json:"nameOfUser"`
	PhoneNumber   string        `json:"phoneNumber"`
	Email         string        `json:"email"`
	Address       string        `json:"address"`
	Province      string        `json:"province"`
	Ward          string        `json:"ward"`
	Note          string        `json:"note"`
	TypeOfPayment PaymentMethod `json:"typeOfPayment"`
	TotalPrice    int64         `json:"totalPrice"`
	Status        InvoiceStatus `json:"status"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
