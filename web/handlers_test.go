package web_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/openshelf/biblio/lending"
	"github.com/openshelf/biblio/payment"
	"github.com/openshelf/biblio/sqlitestore"
	"github.com/openshelf/biblio/web"
)

type steadyOutcomes struct{}

func (steadyOutcomes) Draw() float64 { return 0.99 }

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlitestore.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	gateway := payment.NewGateway("", steadyOutcomes{})
	return web.SetupRoutes(web.NewHandlers(lending.NewService(store), gateway))
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddBookEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doJSON(router, http.MethodPost, "/books", gin.H{
		"title":        "Dune",
		"author":       "Frank Herbert",
		"isbn":         "1234567890123",
		"total_copies": 2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "successfully added")

	// Malformed ISBN is refused with the validation message.
	w = doJSON(router, http.MethodPost, "/books", gin.H{
		"title":        "Dune",
		"author":       "Frank Herbert",
		"isbn":         "123",
		"total_copies": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ISBN must be exactly 13 digits.")
}

func TestCirculationEndpoints(t *testing.T) {
	router := testRouter(t)

	w := doJSON(router, http.MethodPost, "/books", gin.H{
		"title":        "Solaris",
		"author":       "Stanislaw Lem",
		"isbn":         "3333333333333",
		"total_copies": 1,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/borrow", gin.H{"patron_id": "123456", "book_id": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Successfully borrowed")

	// Single copy is now out.
	w = doJSON(router, http.MethodPost, "/borrow", gin.H{"patron_id": "654321", "book_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "currently not available")

	w = doJSON(router, http.MethodGet, "/patrons/123456/late_fee?book_id=1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), lending.StatusNotOverdue)

	w = doJSON(router, http.MethodGet, "/patrons/123456", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var report lending.PatronReport
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 1, report.TotalBooksBorrowed)

	w = doJSON(router, http.MethodPost, "/return", gin.H{"patron_id": "123456", "book_id": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No late fees")
}

func TestPatronStatusRejectsBadID(t *testing.T) {
	router := testRouter(t)

	w := doJSON(router, http.MethodGet, "/patrons/12x456", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid patron ID")
}

func TestSearchEndpoint(t *testing.T) {
	router := testRouter(t)

	doJSON(router, http.MethodPost, "/books", gin.H{
		"title":        "The Dispossessed",
		"author":       "Ursula K. Le Guin",
		"isbn":         "2222222222222",
		"total_copies": 1,
	})

	w := doJSON(router, http.MethodGet, "/books/search?q=guin&type=author", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Dispossessed")

	// No term, no results.
	w = doJSON(router, http.MethodGet, "/books/search", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestPaymentAndRefundEndpoints(t *testing.T) {
	router := testRouter(t)

	w := doJSON(router, http.MethodPost, "/payments", gin.H{"patron_id": "123456", "amount": 5.00})
	assert.Equal(t, http.StatusOK, w.Code)

	var paid struct {
		Success       bool   `json:"success"`
		Message       string `json:"message"`
		TransactionID string `json:"transaction_id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &paid))
	assert.True(t, paid.Success)
	assert.Contains(t, paid.Message, "$5.00")
	assert.NotEmpty(t, paid.TransactionID)

	// The refund finds the transaction in the shared gateway ledger.
	w = doJSON(router, http.MethodPost, "/refunds", gin.H{"transaction_id": paid.TransactionID, "amount": 5.00})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Refund of $5.00 processed successfully")

	// Preconditions fail fast.
	w = doJSON(router, http.MethodPost, "/payments", gin.H{"patron_id": "123456", "amount": 20.00})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds maximum late fee")
}
