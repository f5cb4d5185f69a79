// Package sqlitestore is the SQLite-backed persistence gateway behind
// catalog.Store. Each method is a single statement or read, so every call is
// atomic on its own; the lending rules rely on exactly that.
package sqlitestore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/openshelf/biblio/catalog"
)

// timestampFormat is how borrow and due dates are persisted. Return dates are
// stored date-only, which is all the fee schedule reads anyway.
const timestampFormat = "2006-01-02T15:04:05"

// Store wraps a SQLite connection with the catalog.Store operations.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at dbPath and applies the
// schema.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func applySchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            isbn TEXT NOT NULL UNIQUE,
            total_copies INTEGER NOT NULL,
            available_copies INTEGER NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS borrow_records (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            patron_id TEXT NOT NULL,
            book_id INTEGER NOT NULL REFERENCES books(id),
            borrow_date TEXT NOT NULL,
            due_date TEXT NOT NULL,
            return_date TEXT
        );`,
		`CREATE INDEX IF NOT EXISTS idx_borrow_records_patron
            ON borrow_records(patron_id, return_date);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

const bookColumns = `id, title, author, isbn, total_copies, available_copies`

func scanBook(row interface{ Scan(...interface{}) error }) (*catalog.Book, error) {
	var b catalog.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// BookByID returns the book with the given id, nil when absent.
func (s *Store) BookByID(id int64) (*catalog.Book, error) {
	row := s.db.QueryRow(`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	return scanBook(row)
}

// BookByISBN returns the book with the given ISBN, nil when absent.
func (s *Store) BookByISBN(isbn string) (*catalog.Book, error) {
	row := s.db.QueryRow(`SELECT `+bookColumns+` FROM books WHERE isbn = ?`, isbn)
	return scanBook(row)
}

// InsertBook adds a catalog row. The UNIQUE constraint on isbn backs up the
// duplicate check done by the lending rules.
func (s *Store) InsertBook(title, author, isbn string, total, available int) error {
	_, err := s.db.Exec(
		`INSERT INTO books (title, author, isbn, total_copies, available_copies)
         VALUES (?, ?, ?, ?, ?)`,
		title, author, isbn, total, available)
	return err
}

// AdjustAvailability moves available_copies by delta, refusing any change
// that would leave the count negative or above total_copies.
func (s *Store) AdjustAvailability(bookID int64, delta int) error {
	res, err := s.db.Exec(
		`UPDATE books
         SET available_copies = available_copies + ?
         WHERE id = ?
           AND available_copies + ? >= 0
           AND available_copies + ? <= total_copies`,
		delta, bookID, delta, delta)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("availability of book %d cannot move by %d", bookID, delta)
	}
	return nil
}

// InsertBorrow records a new active loan.
func (s *Store) InsertBorrow(patronID string, bookID int64, borrowDate, dueDate time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO borrow_records (patron_id, book_id, borrow_date, due_date)
         VALUES (?, ?, ?, ?)`,
		patronID, bookID, borrowDate.Format(timestampFormat), dueDate.Format(timestampFormat))
	return err
}

// CloseBorrow stamps the active record for (patron, book) with a return date.
func (s *Store) CloseBorrow(patronID string, bookID int64, returnDate time.Time) error {
	res, err := s.db.Exec(
		`UPDATE borrow_records SET return_date = ?
         WHERE patron_id = ? AND book_id = ? AND return_date IS NULL`,
		returnDate.Format(catalog.DateFormat), patronID, bookID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no active borrow record for patron %s and book %d", patronID, bookID)
	}
	return nil
}

// ActiveBorrowCount counts the patron's open loans.
func (s *Store) ActiveBorrowCount(patronID string) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM borrow_records
         WHERE patron_id = ? AND return_date IS NULL`,
		patronID).Scan(&count)
	return count, err
}

// SearchBooks finds catalog rows by exact ISBN or case-insensitive substring
// on author or title.
func (s *Store) SearchBooks(term, field string) ([]*catalog.Book, error) {
	var rows *sql.Rows
	var err error
	switch field {
	case "isbn":
		rows, err = s.db.Query(`SELECT `+bookColumns+` FROM books WHERE isbn = ?`, term)
	case "author":
		rows, err = s.db.Query(
			`SELECT `+bookColumns+` FROM books WHERE LOWER(author) LIKE LOWER(?)`,
			"%"+term+"%")
	default:
		rows, err = s.db.Query(
			`SELECT `+bookColumns+` FROM books WHERE LOWER(title) LIKE LOWER(?)`,
			"%"+term+"%")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]*catalog.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// BorrowsFor lists the patron's records, most recent first, optionally only
// the active ones.
func (s *Store) BorrowsFor(patronID string, activeOnly bool) ([]*catalog.BorrowRecord, error) {
	query := `SELECT id, patron_id, book_id, borrow_date, due_date, return_date
              FROM borrow_records WHERE patron_id = ?`
	if activeOnly {
		query += ` AND return_date IS NULL`
	}
	query += ` ORDER BY borrow_date DESC`

	rows, err := s.db.Query(query, patronID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*catalog.BorrowRecord, 0)
	for rows.Next() {
		var r catalog.BorrowRecord
		var returnDate sql.NullString
		if err := rows.Scan(&r.ID, &r.PatronID, &r.BookID, &r.BorrowDate, &r.DueDate, &returnDate); err != nil {
			return nil, err
		}
		r.ReturnDate = returnDate.String
		records = append(records, &r)
	}
	return records, rows.Err()
}
