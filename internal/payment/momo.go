package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vuhd/tourbooking/config"
	"github.com/vuhd/tourbooking/internal/domain"
)

// MomoGateway creates mobile-wallet payments. The request signature is an
// HMAC-SHA256 over the raw parameter string, per the wallet API contract.
type MomoGateway struct {
	cfg    config.MomoConfig
	client *http.Client
}

func NewMomoGateway(cfg config.MomoConfig) *MomoGateway {
	return &MomoGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type momoRequest struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	Amount      int64  `json:"amount"`
	ReturnURL   string `json:"returnUrl"`
	NotifyURL   string `json:"notifyUrl"`
	RequestType string `json:"requestType"`
	Signature   string `json:"signature"`
}

type momoResponse struct {
	PayURL  string `json:"payUrl"`
	Message string `json:"message"`
}

func (g *MomoGateway) CreatePayment(ctx context.Context, invoice *domain.Invoice) (string, error) {
	requestID := uuid.NewString()
	req := momoRequest{
		PartnerCode: g.cfg.PartnerCode,
		AccessKey:   g.cfg.AccessKey,
		RequestID:   requestID,
		OrderID:     invoice.InvoiceCode,
		OrderInfo:   fmt.Sprintf("Tour booking %s", invoice.InvoiceCode),
		Amount:      invoice.TotalPrice,
		ReturnURL:   g.cfg.ReturnURL,
		NotifyURL:   g.cfg.NotifyURL,
		RequestType: "captureMoMoWallet",
	}
	req.Signature = g.sign(req)

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("momo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode)
	}

	var mr momoResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return "", fmt.Errorf("momo response: %w", err)
	}
	if mr.PayURL == "" {
		return "", fmt.Errorf("%w: %s", ErrGatewayRejected, mr.Message)
	}
	return mr.PayURL, nil
}

func (g *MomoGateway) sign(req momoRequest) string {
	raw := fmt.Sprintf("partnerCode=%s&accessKey=%s&requestId=%s&amount=%d&orderId=%s&orderInfo=%s&returnUrl=%s&notifyUrl=%s",
		req.PartnerCode, req.AccessKey, req.RequestID, req.Amount, req.OrderID, req.OrderInfo, req.ReturnURL, req.NotifyURL)
	mac := hmac.New(sha256.New, []byte(g.cfg.SecretKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

var _ Gateway = (*MomoGateway)(nil)
