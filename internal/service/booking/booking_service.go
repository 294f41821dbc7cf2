package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vuhd/tourbooking/internal/domain"
	"github.com/vuhd/tourbooking/internal/kafka"
	"github.com/vuhd/tourbooking/internal/payment"
	"github.com/vuhd/tourbooking/internal/pricing"
	"github.com/vuhd/tourbooking/internal/repository"
)

var (
	ErrSubmissionInFlight   = errors.New("submission already in progress")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrInvoiceNotPayable    = errors.New("invoice is not awaiting payment")
	ErrNoGateway            = errors.New("no gateway configured for payment method")
)

// ValidationError carries every failed check of the booking draft so the
// client can show the full list at once.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

type BookingUseCase interface {
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*SubmissionResult, error)
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	Repay(ctx context.Context, input RepayInput) (*SubmissionResult, error)
	ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*domain.Invoice, error)
	ExpirePendingInvoices(ctx context.Context) ([]domain.Invoice, error)
}

type Cache interface {
	AcquireSubmitLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, key string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	invoices           repository.InvoiceRepository
	tours              repository.TourRepository
	cache              Cache
	producer           Producer
	gateways           map[domain.PaymentMethod]payment.Gateway
	invoiceTopic       string
	notificationsTopic string
	submitLockTTL      time.Duration
	paymentTTL         time.Duration
	log                logrus.FieldLogger
}

// SeatCountInput is one per-category count as submitted by the client. The
// quantity is loosely typed on purpose: anything non-numeric collapses to 0.
type SeatCountInput struct {
	TypeOfPerson domain.PersonTypeRef `json:"typeOfPersonId"`
	Quantity     any                  `json:"quantity"`
}

type CreateInvoiceInput struct {
	TourID        string           `json:"tourId"`
	DepartureDate string           `json:"departureDate"`
	SeatFor       []SeatCountInput `json:"seatFor"`
	SeatAddFor    []SeatCountInput `json:"seatAddFor"`
	NameOfUser    string           `json:"nameOfUser"`
	PhoneNumber   string           `json:"phoneNumber"`
	Email         string           `json:"email"`
	Address       string           `json:"address"`
	Province      string           `json:"province"`
	Ward          string           `json:"ward"`
	Note          string           `json:"note"`
	TypeOfPayment string           `json:"typeOfPayment"`
}

type RepayInput struct {
	InvoiceID     string `json:"invoiceId"`
	TypeOfPayment string `json:"typeOfPayment"`
}

// ConfirmPaymentInput is the gateway notify callback: the order id is the
// invoice code handed to the gateway at payment creation.
type ConfirmPaymentInput struct {
	InvoiceCode   string
	TransactionID string
	Success       bool
}

type SubmissionResult struct {
	Invoice  *domain.Invoice
	PayURL   string
	Warnings []string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithGateway(method domain.PaymentMethod, gw payment.Gateway) BookingServiceOption {
	return func(s *BookingService) {
		s.gateways[method] = gw
	}
}

func WithLogger(log logrus.FieldLogger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(
	invoices repository.InvoiceRepository,
	tours repository.TourRepository,
	cache Cache,
	producer Producer,
	invoiceTopic string,
	submitLockTTL, paymentTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		invoices:      invoices,
		tours:         tours,
		cache:         cache,
		producer:      producer,
		gateways:      make(map[domain.PaymentMethod]payment.Gateway),
		invoiceTopic:  invoiceTopic,
		submitLockTTL: submitLockTTL,
		paymentTTL:    paymentTTL,
		log:           logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateInvoice runs the full submission flow: rebuild the seat allocation
// from the request counts under the clamp rules, recompute the total price
// server-side, validate the draft, persist the invoice and branch on the
// payment method. The submit lock makes a rapid duplicate submission a
// no-op until the first one resolves.
func (s *BookingService) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*SubmissionResult, error) {
	method, ok := domain.ParsePaymentMethod(input.TypeOfPayment)
	if !ok {
		return nil, ErrUnknownPaymentMethod
	}

	tour, err := s.tours.GetByID(ctx, input.TourID)
	if err != nil {
		return nil, err
	}

	catalog := pricing.BuildCatalog(tour.AdditionalPrices, tour.AllowTypePeople)

	var warnings []string
	alloc := pricing.NewAllocation(tour.Seats, pricing.WithNotifier(func(msg string) {
		warnings = append(warnings, msg)
	}))
	for _, e := range input.SeatFor {
		if e.TypeOfPerson.ID == "" {
			continue
		}
		alloc.SetBaseCount(e.TypeOfPerson.ID, e.Quantity)
	}
	for _, e := range input.SeatAddFor {
		if e.TypeOfPerson.ID == "" {
			continue
		}
		alloc.SetExceedCount(e.TypeOfPerson.ID, e.Quantity)
	}

	total := s.totalFor(tour, alloc, catalog)

	draft := pricing.Draft{
		Name:          input.NameOfUser,
		Phone:         input.PhoneNumber,
		Email:         input.Email,
		Address:       input.Address,
		Province:      input.Province,
		Ward:          input.Ward,
		DepartureDate: input.DepartureDate,
		TotalPrice:    total,
		Seats:         tour.Seats,
		HasAdditional: tour.HasAdditional(),
		TotalPeople:   alloc.TotalPeople(),
	}
	if errs := pricing.ValidateDraft(draft); len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}

	lockKey := input.TourID + ":" + input.PhoneNumber
	if s.cache != nil {
		locked, err := s.cache.AcquireSubmitLock(ctx, lockKey, s.submitLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrSubmissionInFlight
		}
		defer func() {
			_ = s.cache.ReleaseSubmitLock(ctx, lockKey)
		}()
	}

	seatFor, seatAddFor := alloc.SeatEntries(catalog)
	invoice := &domain.Invoice{
		InvoiceCode:   uuid.NewString(),
		TourID:        tour.ID,
		DepartureDate: input.DepartureDate,
		SeatFor:       seatFor,
		SeatAddFor:    seatAddFor,
		NameOfUser:    input.NameOfUser,
		PhoneNumber:   input.PhoneNumber,
		Email:         input.Email,
		Address:       input.Address,
		Province:      input.Province,
		Ward:          input.Ward,
		Note:          input.Note,
		TypeOfPayment: method,
		TotalPrice:    total,
		Status:        domain.InvoiceStatusPending,
		ExpiresAt:     time.Now().Add(s.paymentTTL),
	}

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	result := &SubmissionResult{Invoice: invoice, Warnings: warnings}
	if method != domain.PaymentCash {
		payURL, err := s.startGatewayPayment(ctx, method, invoice)
		if err != nil {
			// The invoice stays PENDING so the customer can retry through
			// the repayment flow.
			return nil, err
		}
		result.PayURL = payURL
	}

	if err := s.publish(ctx, "invoice_created", invoice); err != nil {
		s.log.WithError(err).WithField("invoice_code", invoice.InvoiceCode).
			Warn("failed to publish invoice_created event")
	}
	return result, nil
}

func (s *BookingService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

// Repay re-runs the payment step of a previously persisted invoice. Seat
// counts are reseeded from the invoice rows and the total is recomputed
// against the current tour record.
func (s *BookingService) Repay(ctx context.Context, input RepayInput) (*SubmissionResult, error) {
	invoice, err := s.invoices.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoiceStatusPaid || invoice.Status == domain.InvoiceStatusCancelled {
		return nil, ErrInvoiceNotPayable
	}

	method := invoice.TypeOfPayment
	if input.TypeOfPayment != "" {
		m, ok := domain.ParsePaymentMethod(input.TypeOfPayment)
		if !ok {
			return nil, ErrUnknownPaymentMethod
		}
		method = m
	}

	tour, err := s.tours.GetByID(ctx, invoice.TourID)
	if err != nil {
		return nil, err
	}

	catalog := pricing.BuildCatalog(tour.AdditionalPrices, tour.AllowTypePeople)

	var warnings []string
	alloc := pricing.NewAllocation(tour.Seats, pricing.WithNotifier(func(msg string) {
		warnings = append(warnings, msg)
	}))
	alloc.SeedFromInvoice(invoice)

	total := s.totalFor(tour, alloc, catalog)

	if s.cache != nil {
		locked, err := s.cache.AcquireSubmitLock(ctx, invoice.ID, s.submitLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrSubmissionInFlight
		}
		defer func() {
			_ = s.cache.ReleaseSubmitLock(ctx, invoice.ID)
		}()
	}

	if invoice.Status == domain.InvoiceStatusExpired {
		if _, err := s.invoices.UpdateStatus(ctx, invoice.ID, domain.InvoiceStatusPending); err != nil {
			return nil, err
		}
	}

	updated, err := s.invoices.UpdatePayment(ctx, invoice.ID, method, total, time.Now().Add(s.paymentTTL))
	if err != nil {
		return nil, err
	}

	result := &SubmissionResult{Invoice: updated, Warnings: warnings}
	if method != domain.PaymentCash {
		payURL, err := s.startGatewayPayment(ctx, method, updated)
		if err != nil {
			return nil, err
		}
		result.PayURL = payURL
	}

	if err := s.publish(ctx, "invoice_repayment", updated); err != nil {
		s.log.WithError(err).WithField("invoice_code", updated.InvoiceCode).
			Warn("failed to publish invoice_repayment event")
	}
	return result, nil
}

// ConfirmPayment settles a gateway notify callback. A successful callback
// records the transaction and marks the invoice PAID; a failed one leaves it
// PENDING so the customer can retry through repayment. Replayed callbacks on
// an already-paid invoice are answered without another transition.
func (s *BookingService) ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*domain.Invoice, error) {
	invoice, err := s.invoices.GetByCode(ctx, input.InvoiceCode)
	if err != nil {
		return nil, err
	}
	if invoice.Status == domain.InvoiceStatusPaid {
		return invoice, nil
	}
	if !input.Success {
		s.log.WithField("invoice_code", invoice.InvoiceCode).Info("gateway reported failed payment")
		return invoice, nil
	}

	if input.TransactionID != "" {
		if err := s.invoices.SetTransaction(ctx, invoice.ID, input.TransactionID); err != nil {
			return nil, err
		}
	}
	updated, err := s.invoices.UpdateStatus(ctx, invoice.ID, domain.InvoiceStatusPaid)
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, "invoice_paid", updated); err != nil {
		s.log.WithError(err).WithField("invoice_code", updated.InvoiceCode).
			Warn("failed to publish invoice_paid event")
	}
	return updated, nil
}

// ExpirePendingInvoices sweeps invoices whose payment deadline has passed,
// publishing an event per invoice for the notifications worker.
func (s *BookingService) ExpirePendingInvoices(ctx context.Context) ([]domain.Invoice, error) {
	expired, err := s.invoices.ExpirePendingBefore(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	for _, inv := range expired {
		if err := s.publish(ctx, "invoice_expired", &inv); err != nil {
			s.log.WithError(err).WithField("invoice_code", inv.InvoiceCode).
				Warn("failed to publish invoice_expired event")
		}
	}
	return expired, nil
}

func (s *BookingService) totalFor(tour *domain.Tour, alloc *pricing.Allocation, catalog *pricing.Catalog) int64 {
	basePrice := pricing.DiscountedBasePrice(tour.Price, tour.Discount)
	surcharge := alloc.SurchargeTotal(catalog)
	return pricing.ComputeTotalPrice(tour.Seats, basePrice, tour.HasAdditional(),
		alloc.TotalPeople(), alloc.TotalBase(), alloc.TotalExceed(), surcharge)
}

func (s *BookingService) startGatewayPayment(ctx context.Context, method domain.PaymentMethod, invoice *domain.Invoice) (string, error) {
	gw := s.gateways[method]
	if gw == nil {
		return "", fmt.Errorf("%w: %s", ErrNoGateway, method)
	}
	payURL, err := gw.CreatePayment(ctx, invoice)
	if err != nil {
		return "", fmt.Errorf("create %s payment: %w", method, err)
	}
	return payURL, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, invoice *domain.Invoice) error {
	if s.producer == nil || s.invoiceTopic == "" {
		return nil
	}
	event := kafka.InvoiceEvent{
		Type:        eventType,
		InvoiceID:   invoice.ID,
		InvoiceCode: invoice.InvoiceCode,
		TourID:      invoice.TourID,
		Email:       invoice.Email,
		Payment:     string(invoice.TypeOfPayment),
		TotalPrice:  invoice.TotalPrice,
		Status:      string(invoice.Status),
		ExpiresAt:   invoice.ExpiresAt,
	}
	if err := s.producer.Publish(ctx, s.invoiceTopic, invoice.InvoiceCode, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, invoice.InvoiceCode, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
