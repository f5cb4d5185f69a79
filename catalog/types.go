package catalog

import "time"

// DateFormat is the date portion of the ISO-8601 timestamps the store keeps.
const DateFormat = "2006-01-02"

// MaxLateFee is the most a single overdue return can ever cost, and so also
// the most a late-fee payment or refund may move.
const MaxLateFee = 15.00

// PatronIDLen is the fixed width of a library card number.
const PatronIDLen = 6

// ValidPatronID reports whether the id is exactly six ASCII digits, the
// library card wire format.
func ValidPatronID(patronID string) bool {
	if len(patronID) != PatronIDLen {
		return false
	}
	for _, c := range patronID {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Book unique title in the catalog, with copy counts
type Book struct {
	ID              int64
	Title           string
	Author          string
	ISBN            string
	TotalCopies     int
	AvailableCopies int
}

// BorrowRecord one lending of one book copy to one patron. Dates are kept as
// the ISO-8601 strings the store persists; ReturnDate is empty while the
// record is active.
type BorrowRecord struct {
	ID         int64
	PatronID   string
	BookID     int64
	BorrowDate string
	DueDate    string
	ReturnDate string
}

// Active reports whether the record has not been returned yet.
func (r *BorrowRecord) Active() bool {
	return r.ReturnDate == ""
}

// Store the persistence gateway the lending rules run against. Every call is
// assumed atomic; the store owns Book and BorrowRecord state.
type Store interface {
	BookByID(id int64) (*Book, error)
	BookByISBN(isbn string) (*Book, error)
	InsertBook(title, author, isbn string, total, available int) error
	AdjustAvailability(bookID int64, delta int) error
	InsertBorrow(patronID string, bookID int64, borrowDate, dueDate time.Time) error
	CloseBorrow(patronID string, bookID int64, returnDate time.Time) error
	ActiveBorrowCount(patronID string) (int, error)
	SearchBooks(term, field string) ([]*Book, error)
	BorrowsFor(patronID string, activeOnly bool) ([]*BorrowRecord, error)
}
