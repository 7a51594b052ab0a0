package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a stable identifier derived from a contact's phone number.
type ID uint64

// IDFromPhone generates a deterministic ID from a phone number using BLAKE2b hashing.
// Identical phone numbers always produce identical IDs.
func IDFromPhone(phone string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(phone))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Contact is a single phonebook entry.
// Two contacts are the same contact when their phone numbers match,
// regardless of the other fields.
type Contact struct {
	Name     string
	Phone    string
	Email    string // optional, may be empty
	Category string
}

// ID returns the phone-derived identifier of the contact.
func (c *Contact) ID() ID {
	return IDFromPhone(c.Phone)
}

// SameAs reports whether c and other identify the same contact.
func (c *Contact) SameAs(other *Contact) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Phone == other.Phone
}

// String renders the contact the way the console front end prints it.
func (c Contact) String() string {
	s := "Name: " + c.Name + "\nPhone: " + c.Phone + "\n"
	if c.Email != "" {
		s += "Email: " + c.Email + "\n"
	}
	return s + "Category: " + c.Category + "\n"
}

// Default category names.
const (
	CategoryFamily  = "Family"
	CategoryFriends = "Friends"
	CategoryWork    = "Work"
)

// DefaultCategories returns the stock category set in display order.
func DefaultCategories() []string {
	return []string{CategoryFamily, CategoryFriends, CategoryWork}
}
