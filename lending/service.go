package lending

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/openshelf/biblio/catalog"
)

// Catalog field limits.
const (
	MaxTitleLen  = 200
	MaxAuthorLen = 100
	ISBNLen      = 13
)

// Statuses reported by LateFeeFor.
const (
	StatusNoActiveBorrow = "No active borrow record found"
	StatusNotOverdue     = "Book not overdue"
	StatusOverdue        = "Overdue"
)

// NotReturned is the rendering of an absent return date in patron reports.
const NotReturned = "Not returned"

// Service executes the lending rules against a persistence gateway. All
// methods run synchronously within a single call; the store serializes its
// own reads and writes.
type Service struct {
	store catalog.Store
	now   func() time.Time
}

// NewService builds a Service over the given store.
func NewService(store catalog.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// FeeAssessment is the read-only late-fee view for one (patron, book) pair.
type FeeAssessment struct {
	FeeAmount   float64 `json:"fee_amount"`
	DaysOverdue int     `json:"days_overdue"`
	Status      string  `json:"status"`
}

// BorrowedBook is one active loan in a patron report, annotated with the
// current overdue state.
type BorrowedBook struct {
	BookID      int64   `json:"book_id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn"`
	BorrowDate  string  `json:"borrow_date"`
	DueDate     string  `json:"due_date"`
	DaysOverdue int     `json:"days_overdue"`
	LateFee     float64 `json:"late_fee"`
}

// HistoryEntry is one past or present loan in a patron report.
type HistoryEntry struct {
	BookID     int64  `json:"book_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	BorrowDate string `json:"borrow_date"`
	DueDate    string `json:"due_date"`
	ReturnDate string `json:"return_date"`
}

// PatronReport is the full status view for one patron.
type PatronReport struct {
	PatronID           string         `json:"patron_id"`
	CurrentlyBorrowed  []BorrowedBook `json:"currently_borrowed"`
	TotalBooksBorrowed int            `json:"total_books_borrowed"`
	TotalLateFees      float64        `json:"total_late_fees"`
	BorrowingHistory   []HistoryEntry `json:"borrowing_history"`
}

// AddBook validates and inserts a new title into the catalog, with all copies
// available.
func (s *Service) AddBook(title, author, isbn string, totalCopies int) (bool, string) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if err := s.addBook(title, author, isbn, totalCopies); err != nil {
		return false, err.Error()
	}

	return true, fmt.Sprintf("Book %q has been successfully added to the catalog.", title)
}

func (s *Service) addBook(title, author, isbn string, totalCopies int) *catalog.ServiceError {
	if err := validateNewBook(title, author, isbn, totalCopies); err != nil {
		return err
	}

	existing, err := s.store.BookByISBN(isbn)
	if err != nil {
		return catalog.Unexpected("Database error occurred while adding the book.")
	}
	if existing != nil {
		return catalog.Conflict("A book with this ISBN already exists.")
	}

	if err := s.store.InsertBook(title, author, isbn, totalCopies, totalCopies); err != nil {
		return catalog.Unexpected("Database error occurred while adding the book.")
	}
	return nil
}

// BorrowBook lends one copy of a book to a patron for LoanPeriodDays.
func (s *Service) BorrowBook(patronID string, bookID int64) (bool, string) {
	message, err := s.borrowBook(patronID, bookID)
	if err != nil {
		return false, err.Error()
	}
	return true, message
}

func (s *Service) borrowBook(patronID string, bookID int64) (string, *catalog.ServiceError) {
	if !catalog.ValidPatronID(patronID) {
		return "", catalog.Validation("Invalid patron ID. Must be exactly 6 digits.")
	}

	book, err := s.store.BookByID(bookID)
	if err != nil {
		return "", catalog.Unexpected("Database error occurred while looking up the book.")
	}
	if book == nil {
		return "", catalog.NotFound("Book not found.")
	}
	if book.AvailableCopies <= 0 {
		return "", catalog.Conflict("This book is currently not available.")
	}

	active, err := s.store.ActiveBorrowCount(patronID)
	if err != nil {
		return "", catalog.Unexpected("Database error occurred while checking the borrow limit.")
	}
	// The legacy service rejected only a seventh loan here, so a patron can
	// hold six books despite the "maximum of 5" wording. Kept as-is.
	if active > 5 {
		return "", catalog.Conflict("You have reached the maximum borrowing limit of 5 books.")
	}

	borrowDate := s.now()
	dueDate := borrowDate.AddDate(0, 0, LoanPeriodDays)

	if err := s.store.InsertBorrow(patronID, bookID, borrowDate, dueDate); err != nil {
		return "", catalog.Unexpected("Database error occurred while creating borrow record.")
	}
	if err := s.store.AdjustAvailability(bookID, -1); err != nil {
		return "", catalog.Unexpected("Database error occurred while updating book availability.")
	}

	return fmt.Sprintf("Successfully borrowed %q. Due date: %s.",
		book.Title, dueDate.Format(catalog.DateFormat)), nil
}

// ReturnBook closes a patron's active loan, frees the copy, and reports any
// late fee owed for it.
func (s *Service) ReturnBook(patronID string, bookID int64) (bool, string) {
	message, err := s.returnBook(patronID, bookID)
	if err != nil {
		return false, err.Error()
	}
	return true, message
}

func (s *Service) returnBook(patronID string, bookID int64) (string, *catalog.ServiceError) {
	if !catalog.ValidPatronID(patronID) {
		return "", catalog.Validation("Invalid patron ID. Must be exactly 6 digits.")
	}

	book, err := s.store.BookByID(bookID)
	if err != nil {
		return "", catalog.Unexpected("Database error occurred while looking up the book.")
	}
	if book == nil {
		return "", catalog.NotFound(fmt.Sprintf("Book with ID %d not found.", bookID))
	}

	record, err := s.activeBorrow(patronID, bookID)
	if err != nil {
		return "", catalog.Unexpected("Database error occurred while looking up the borrow record.")
	}
	if record == nil {
		return "", catalog.Conflict(fmt.Sprintf("No active borrow record found for patron %s and book ID %d.", patronID, bookID))
	}

	returnDate := s.now()
	if err := s.store.CloseBorrow(patronID, bookID, returnDate); err != nil {
		return "", catalog.Unexpected("Database error occurred while closing the borrow record.")
	}
	if err := s.store.AdjustAvailability(bookID, 1); err != nil {
		return "", catalog.Unexpected("Database error occurred while updating book availability.")
	}

	fee, daysLate := s.feeForRecord(record, returnDate)
	if daysLate > 0 {
		return fmt.Sprintf("Book returned successfully. Late fee: $%.2f (%d days overdue).", fee, daysLate), nil
	}
	return "Book returned successfully. No late fees.", nil
}

// LateFeeFor reports the current late fee for a patron's active loan of a
// book. It never fails: an absent record or a book that is not overdue yields
// a zero assessment with the matching status.
func (s *Service) LateFeeFor(patronID string, bookID int64) FeeAssessment {
	record, err := s.activeBorrow(patronID, bookID)
	if err != nil || record == nil {
		return FeeAssessment{Status: StatusNoActiveBorrow}
	}

	fee, daysOverdue := s.feeForRecord(record, s.now())
	if daysOverdue <= 0 {
		return FeeAssessment{Status: StatusNotOverdue}
	}

	return FeeAssessment{FeeAmount: fee, DaysOverdue: daysOverdue, Status: StatusOverdue}
}

// SearchBooks looks up catalog entries by title, author or ISBN. An empty
// term yields an empty result without touching the store.
func (s *Service) SearchBooks(term, field string) ([]*catalog.Book, error) {
	if term == "" {
		return []*catalog.Book{}, nil
	}

	switch field {
	case "isbn", "author":
	default:
		field = "title"
	}

	books, err := s.store.SearchBooks(term, field)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot search the catalog")
	}
	return books, nil
}

// PatronStatus builds the full status report for a patron: active loans with
// their accrued fees, the fee total, and the borrowing history.
func (s *Service) PatronStatus(patronID string) (*PatronReport, error) {
	if !catalog.ValidPatronID(patronID) {
		return nil, catalog.Validation("Invalid patron ID")
	}

	active, err := s.store.BorrowsFor(patronID, true)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot retrieve active borrows")
	}
	history, err := s.store.BorrowsFor(patronID, false)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot retrieve borrowing history")
	}

	now := s.now()
	report := &PatronReport{
		PatronID:          patronID,
		CurrentlyBorrowed: make([]BorrowedBook, 0, len(active)),
		BorrowingHistory:  make([]HistoryEntry, 0, len(history)),
	}

	var totalFees float64
	for _, record := range active {
		book, err := s.store.BookByID(record.BookID)
		if err != nil {
			return nil, errors.Wrap(err, "Cannot retrieve borrowed book")
		}
		if book == nil {
			continue
		}

		fee, daysOverdue := s.feeForRecord(record, now)
		totalFees += fee

		report.CurrentlyBorrowed = append(report.CurrentlyBorrowed, BorrowedBook{
			BookID:      record.BookID,
			Title:       book.Title,
			Author:      book.Author,
			ISBN:        book.ISBN,
			BorrowDate:  record.BorrowDate,
			DueDate:     record.DueDate,
			DaysOverdue: daysOverdue,
			LateFee:     fee,
		})
	}

	for _, record := range history {
		book, err := s.store.BookByID(record.BookID)
		if err != nil {
			return nil, errors.Wrap(err, "Cannot retrieve borrowed book")
		}
		if book == nil {
			continue
		}

		returnDate := record.ReturnDate
		if returnDate == "" {
			returnDate = NotReturned
		}

		report.BorrowingHistory = append(report.BorrowingHistory, HistoryEntry{
			BookID:     record.BookID,
			Title:      book.Title,
			Author:     book.Author,
			BorrowDate: record.BorrowDate,
			DueDate:    record.DueDate,
			ReturnDate: returnDate,
		})
	}

	report.TotalBooksBorrowed = len(report.CurrentlyBorrowed)
	report.TotalLateFees = roundCents(totalFees)

	return report, nil
}

// activeBorrow finds the patron's open record for a book, nil when there is
// none. At most one active record per (patron, book) pair is assumed.
func (s *Service) activeBorrow(patronID string, bookID int64) (*catalog.BorrowRecord, error) {
	records, err := s.store.BorrowsFor(patronID, true)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.BookID == bookID {
			return record, nil
		}
	}
	return nil, nil
}

// feeForRecord applies the fee schedule to a stored record. A due date the
// store cannot parse is treated as not overdue.
func (s *Service) feeForRecord(record *catalog.BorrowRecord, now time.Time) (float64, int) {
	dueDate, err := ParseDueDate(record.DueDate)
	if err != nil {
		return 0, 0
	}
	return LateFee(dueDate, now)
}

func validateNewBook(title, author, isbn string, totalCopies int) *catalog.ServiceError {
	if title == "" {
		return catalog.Validation("Title is required.")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return catalog.Validation("Title must be less than 200 characters.")
	}
	if author == "" {
		return catalog.Validation("Author is required.")
	}
	if utf8.RuneCountInString(author) > MaxAuthorLen {
		return catalog.Validation("Author must be less than 100 characters.")
	}
	if len(isbn) != ISBNLen {
		return catalog.Validation("ISBN must be exactly 13 digits.")
	}
	if totalCopies <= 0 {
		return catalog.Validation("Total copies must be a positive integer.")
	}
	return nil
}
