package payment

import (
	"context"
	"errors"

	"github.com/vuhd/tourbooking/internal/domain"
)

// Gateway creates a payment for an invoice with an external provider and
// returns the URL the customer is redirected to. Cash bookings never reach
// a gateway.
type Gateway interface {
	CreatePayment(ctx context.Context, invoice *domain.Invoice) (payURL string, err error)
}

var ErrGatewayRejected = errors.New("payment gateway rejected the request")
