package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/biblio/lending"
	"github.com/openshelf/biblio/payment"
)

// Handlers binds the lending and payment services to the HTTP surface. The
// Gateway instance is shared across requests so refunds can find earlier
// transactions in its ledger.
type Handlers struct {
	Lending *lending.Service
	Gateway *payment.Gateway
}

// NewHandlers wires the services into a handler set.
func NewHandlers(lendingService *lending.Service, gateway *payment.Gateway) *Handlers {
	return &Handlers{Lending: lendingService, Gateway: gateway}
}

type addBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	TotalCopies int    `json:"total_copies"`
}

func (h *Handlers) AddBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ok, message := h.Lending.AddBook(req.Title, req.Author, req.ISBN, req.TotalCopies)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

func (h *Handlers) SearchBooks(c *gin.Context) {
	term := c.Query("q")
	field := c.Query("type")

	books, err := h.Lending.SearchBooks(term, field)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, books)
}

type circulationRequest struct {
	PatronID string `json:"patron_id"`
	BookID   int64  `json:"book_id"`
}

func (h *Handlers) BorrowBook(c *gin.Context) {
	var req circulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ok, message := h.Lending.BorrowBook(req.PatronID, req.BookID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *Handlers) ReturnBook(c *gin.Context) {
	var req circulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ok, message := h.Lending.ReturnBook(req.PatronID, req.BookID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *Handlers) PatronStatus(c *gin.Context) {
	report, err := h.Lending.PatronStatus(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handlers) LateFee(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Query("book_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "book_id must be an integer"})
		return
	}

	c.JSON(http.StatusOK, h.Lending.LateFeeFor(c.Param("id"), bookID))
}

type paymentRequest struct {
	PatronID string  `json:"patron_id"`
	Amount   float64 `json:"amount"`
}

func (h *Handlers) PayLateFees(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ok, message, transactionID := payment.PayLateFees(req.PatronID, req.Amount, h.Gateway)
	status := http.StatusOK
	if !ok {
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"success":        ok,
		"message":        message,
		"transaction_id": transactionID,
	})
}

type refundRequest struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
}

func (h *Handlers) RefundLateFeePayment(c *gin.Context) {
	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ok, message, refundID := payment.RefundLateFeePayment(req.TransactionID, req.Amount, h.Gateway)
	status := http.StatusOK
	if !ok {
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"success":   ok,
		"message":   message,
		"refund_id": refundID,
	})
}
