package email

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vuhd/tourbooking/internal/kafka"
)

type Sender struct {
	log *logrus.Logger
}

func NewSender(log *logrus.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.InvoiceEvent) error {
	s.log.WithFields(logrus.Fields{
		"email":        event.Email,
		"event":        event.Type,
		"invoice_code": event.InvoiceCode,
		"total_price":  event.TotalPrice,
	}).Info("send invoice notification email")
	return nil
}
