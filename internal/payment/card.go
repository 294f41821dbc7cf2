package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vuhd/tourbooking/config"
	"github.com/vuhd/tourbooking/internal/domain"
)

// CardGateway creates card payments with the merchant IPG. The merchant
// token authenticates the server-to-server call and must never reach the
// client.
type CardGateway struct {
	cfg    config.CardConfig
	client *http.Client
}

func NewCardGateway(cfg config.CardConfig) *CardGateway {
	return &CardGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type cardRequest struct {
	MerchantKey string `json:"merchantKey"`
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	ReturnURL   string `json:"returnUrl"`
	Description string `json:"description"`
}

type cardResponse struct {
	PayURL  string `json:"payUrl"`
	Message string `json:"message"`
}

func (g *CardGateway) CreatePayment(ctx context.Context, invoice *domain.Invoice) (string, error) {
	body, err := json.Marshal(cardRequest{
		MerchantKey: g.cfg.MerchantKey,
		OrderID:     invoice.InvoiceCode,
		Amount:      invoice.TotalPrice,
		ReturnURL:   g.cfg.ReturnURL,
		Description: fmt.Sprintf("Tour booking %s", invoice.InvoiceCode),
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.MerchantToken)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("card gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode)
	}

	var cr cardResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("card gateway response: %w", err)
	}
	if cr.PayURL == "" {
		return "", fmt.Errorf("%w: %s", ErrGatewayRejected, cr.Message)
	}
	return cr.PayURL, nil
}

var _ Gateway = (*CardGateway)(nil)
