package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vuhd/tourbooking/internal/domain"
	"github.com/vuhd/tourbooking/internal/repository"
	"github.com/vuhd/tourbooking/internal/service/booking"
)

type InvoiceHandler struct {
	service booking.BookingUseCase
}

type repayRequest struct {
	InvoiceID string `json:"invoiceId"`
}

// momoNotifyRequest is the wallet's server-to-server payment result (IPN).
// orderId carries the invoice code and errorCode "0" means paid.
type momoNotifyRequest struct {
	OrderID   string `json:"orderId"`
	TransID   string `json:"transId"`
	ErrorCode string `json:"errorCode"`
}

func NewInvoiceHandler(service booking.BookingUseCase) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

func (h *InvoiceHandler) Register(router *gin.RouterGroup) {
	router.POST("/invoice", h.create)
	router.POST("/invoice/payUsingCash", h.repayWith(domain.PaymentCash))
	router.POST("/invoice/pay-with-momo", h.repayWith(domain.PaymentMomo))
	router.POST("/invoice/create", h.repayWith(domain.PaymentCard))
	router.POST("/invoice/momo-notify", h.momoNotify)
	router.GET("/invoice/detail/:invoiceId", h.detail)
}

func (h *InvoiceHandler) create(c *gin.Context) {
	var input booking.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": err.Error()})
		return
	}

	result, err := h.service.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		writeSubmissionError(c, err)
		return
	}
	writeSubmissionResult(c, http.StatusCreated, result)
}

func (h *InvoiceHandler) repayWith(method domain.PaymentMethod) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req repayRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": err.Error()})
			return
		}

		result, err := h.service.Repay(c.Request.Context(), booking.RepayInput{
			InvoiceID:     req.InvoiceID,
			TypeOfPayment: string(method),
		})
		if err != nil {
			writeSubmissionError(c, err)
			return
		}
		writeSubmissionResult(c, http.StatusOK, result)
	}
}

func (h *InvoiceHandler) momoNotify(c *gin.Context) {
	var req momoNotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": err.Error()})
		return
	}

	invoice, err := h.service.ConfirmPayment(c.Request.Context(), booking.ConfirmPaymentInput{
		InvoiceCode:   req.OrderID,
		TransactionID: req.TransID,
		Success:       req.ErrorCode == "0",
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": invoice.Status})
}

func (h *InvoiceHandler) detail(c *gin.Context) {
	invoice, err := h.service.GetInvoice(c.Request.Context(), c.Param("invoiceId"))
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// Gateway submissions answer with the redirect payUrl; cash submissions
// answer with the created invoice identifiers.
func writeSubmissionResult(c *gin.Context, status int, result *booking.SubmissionResult) {
	body := gin.H{}
	if len(result.Warnings) > 0 {
		body["warnings"] = result.Warnings
	}
	if result.PayURL != "" {
		body["payUrl"] = result.PayURL
		c.JSON(status, body)
		return
	}
	body["success"] = true
	body["invoice"] = gin.H{
		"_id":           result.Invoice.ID,
		"invoiceCode":   result.Invoice.InvoiceCode,
		"transactionId": result.Invoice.TransactionID,
	}
	c.JSON(status, body)
}

func writeSubmissionError(c *gin.Context, err error) {
	var vErr *booking.ValidationError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": vErr.Error(),
			"errors":  vErr.Messages,
		})
		return
	case errors.Is(err, booking.ErrSubmissionInFlight):
		status = http.StatusConflict
	case errors.Is(err, repository.ErrTourNotFound), errors.Is(err, repository.ErrInvoiceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, booking.ErrUnknownPaymentMethod), errors.Is(err, booking.ErrInvoiceNotPayable):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"code": status, "message": err.Error()})
}
