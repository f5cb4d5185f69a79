package sqlitestore_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/biblio/lending"
	"github.com/openshelf/biblio/payment"
)

// Full circulation flow against the real store: catalog, borrow, on-time
// return, an overdue return hitting the fee cap, and settling the fee
// through the simulated gateway.
func TestLendingFlowEndToEnd(t *testing.T) {
	store := tempStore(t)
	service := lending.NewService(store)

	ok, message := service.AddBook("Dune", "Frank Herbert", "1234567890123", 2)
	assert.True(t, ok, message)

	book, err := store.BookByISBN("1234567890123")
	assert.NoError(t, err)
	assert.Equal(t, 2, book.AvailableCopies)

	// Borrow one copy.
	ok, message = service.BorrowBook("123456", book.ID)
	assert.True(t, ok, message)

	book, _ = store.BookByID(book.ID)
	assert.Equal(t, 1, book.AvailableCopies)

	// Same-day return costs nothing.
	ok, message = service.ReturnBook("123456", book.ID)
	assert.True(t, ok)
	assert.Equal(t, "Book returned successfully. No late fees.", message)

	book, _ = store.BookByID(book.ID)
	assert.Equal(t, 2, book.AvailableCopies)

	// Returning again fails, the record is already closed.
	ok, message = service.ReturnBook("123456", book.ID)
	assert.False(t, ok)
	assert.Equal(t, fmt.Sprintf("No active borrow record found for patron 123456 and book ID %d.", book.ID), message)

	// Plant a loan whose due date passed twenty days ago.
	now := time.Now()
	assert.NoError(t, store.InsertBorrow("123456", book.ID, now.AddDate(0, 0, -34), now.AddDate(0, 0, -20)))
	assert.NoError(t, store.AdjustAvailability(book.ID, -1))

	assessment := service.LateFeeFor("123456", book.ID)
	assert.Equal(t, lending.StatusOverdue, assessment.Status)
	assert.Equal(t, 15.00, assessment.FeeAmount)
	assert.Equal(t, 20, assessment.DaysOverdue)

	ok, message = service.ReturnBook("123456", book.ID)
	assert.True(t, ok)
	assert.Equal(t, fmt.Sprintf("Book returned successfully. Late fee: $15.00 (%d days overdue).", assessment.DaysOverdue), message)

	// Settle the fee and refund it through one shared gateway ledger.
	gateway := payment.NewGateway("", alwaysPay(6))

	ok, message, transactionID := payment.PayLateFees("123456", assessment.FeeAmount, gateway)
	assert.True(t, ok, message)
	assert.NotEmpty(t, transactionID)

	ok, message, refundID := payment.RefundLateFeePayment(transactionID, assessment.FeeAmount, gateway)
	assert.True(t, ok, message)
	assert.NotEmpty(t, refundID)
}

func TestSearchAndPatronStatusEndToEnd(t *testing.T) {
	store := tempStore(t)
	service := lending.NewService(store)

	ok, _ := service.AddBook("The Dispossessed", "Ursula K. Le Guin", "2222222222222", 1)
	assert.True(t, ok)

	books, err := service.SearchBooks("dispossessed", "title")
	assert.NoError(t, err)
	assert.Len(t, books, 1)

	ok, _ = service.BorrowBook("654321", books[0].ID)
	assert.True(t, ok)

	report, err := service.PatronStatus("654321")
	assert.NoError(t, err)
	assert.Equal(t, 1, report.TotalBooksBorrowed)
	assert.Equal(t, 0.00, report.TotalLateFees)
	assert.Len(t, report.BorrowingHistory, 1)
	assert.Equal(t, lending.NotReturned, report.BorrowingHistory[0].ReturnDate)
}

// fixedDraws replays a fixed sequence of unit draws.
type fixedDraws struct {
	draws []float64
	next  int
}

func (f *fixedDraws) Draw() float64 {
	d := f.draws[f.next]
	f.next++
	return d
}

func alwaysPay(n int) *fixedDraws {
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = 0.99
	}
	return &fixedDraws{draws: draws}
}
