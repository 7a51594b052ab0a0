package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/storage"
)

// ContactStore implements storage.ContactStore on a SQLite table.
type ContactStore struct {
	db     *DB
	closed bool
}

var _ storage.ContactStore = (*ContactStore)(nil)

// NewContactStore creates a ContactStore over db, running the migration.
func NewContactStore(db *DB) (*ContactStore, error) {
	if err := db.Migrate(); err != nil {
		return nil, err
	}
	return &ContactStore{db: db}, nil
}

// OpenContactStore opens the database file at dbPath and prepares the schema.
func OpenContactStore(dbPath string) (*ContactStore, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	store, err := NewContactStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database.
func (r *ContactStore) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.db.Close()
}

// LoadAll returns every contact ordered by row id (insertion order).
func (r *ContactStore) LoadAll(ctx context.Context) ([]*core.Contact, error) {
	if r.closed {
		return nil, storage.ErrStorageClosed
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT name, phone, email, category
		FROM contacts
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	contacts := make([]*core.Contact, 0)
	for rows.Next() {
		var c core.Contact
		var email sql.NullString
		if err := rows.Scan(&c.Name, &c.Phone, &email, &c.Category); err != nil {
			return nil, err
		}
		c.Email = email.String
		contacts = append(contacts, &c)
	}

	return contacts, rows.Err()
}

// Insert adds a row for the contact.
func (r *ContactStore) Insert(ctx context.Context, contact *core.Contact) error {
	if r.closed {
		return storage.ErrStorageClosed
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (name, phone, email, category)
		VALUES (?, ?, ?, ?)
	`, contact.Name, contact.Phone, contact.Email, contact.Category)
	return translateError(err)
}

// Update rewrites the row keyed by oldPhone.
func (r *ContactStore) Update(ctx context.Context, oldPhone string, contact *core.Contact) error {
	if r.closed {
		return storage.ErrStorageClosed
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET
			name = ?,
			phone = ?,
			email = ?,
			category = ?
		WHERE phone = ?
	`, contact.Name, contact.Phone, contact.Email, contact.Category, oldPhone)
	if err != nil {
		return translateError(err)
	}
	return requireRow(res)
}

// Delete removes the row keyed by phone.
func (r *ContactStore) Delete(ctx context.Context, phone string) error {
	if r.closed {
		return storage.ErrStorageClosed
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE phone = ?`, phone)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ClearAll deletes every row.
func (r *ContactStore) ClearAll(ctx context.Context) error {
	if r.closed {
		return storage.ErrStorageClosed
	}

	_, err := r.db.ExecContext(ctx, `DELETE FROM contacts`)
	return err
}

// requireRow maps "zero rows affected" to storage.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// translateError maps a UNIQUE constraint violation to storage.ErrDuplicateKey.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %w", storage.ErrDuplicateKey, err)
	}
	return err
}
