package badger

import (
	"fmt"

	"github.com/poiesic/phonebook/core"
)

// Key prefixes for different data types
const (
	contactPrefix = "contact:"
	contactSeq    = "contactseq"
)

// makeContactKey generates the primary key for a contact by phone-derived ID.
// Format: contact:id
func makeContactKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d", contactPrefix, id))
}

// makePhoneKey generates the primary key for the contact stored under phone.
func makePhoneKey(phone string) []byte {
	return makeContactKey(core.IDFromPhone(phone))
}
