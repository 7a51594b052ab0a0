package seed

import (
	"fmt"
	"io"
	"iter"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/export"
)

var firstNames = []string{
	"Amy", "Ben", "Carla", "Dev", "Elena", "Farid", "Grace", "Hiro", "Ines", "Jonas",
	"Kemi", "Liam", "Maya", "Nikolai", "Olga", "Priya", "Quentin", "Rosa", "Sami", "Tess",
	"Umar", "Vera", "Wen", "Ximena", "Yusuf", "Zoe",
}

var lastNames = []string{
	"Adams", "Bauer", "Castillo", "Dubois", "Eriksen", "Fischer", "Garcia", "Haddad",
	"Ito", "Jensen", "Kowalski", "Lopez", "Moreau", "Nakamura", "Okafor", "Petrov",
	"Quinn", "Rossi", "Singh", "Tanaka", "Usman", "Volkov", "Weber", "Yamada",
}

var emailDomains = []string{"example.com", "example.org", "mail.test"}

// Sample yields n generated contacts spread over categories. Phones are
// unique within one call; the same seed always yields the same contacts.
// Every third contact has no email.
func Sample(n int, categories []string, seed uint64) iter.Seq[core.Contact] {
	return func(yield func(core.Contact) bool) {
		if len(categories) == 0 {
			return
		}
		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		for i := 0; i < n; i++ {
			first := firstNames[rng.IntN(len(firstNames))]
			last := lastNames[rng.IntN(len(lastNames))]

			c := core.Contact{
				Name:     first + " " + last,
				Phone:    fmt.Sprintf("555-%03d-%04d", i/10000, i%10000),
				Category: categories[i%len(categories)],
			}
			if i%3 != 2 {
				domain := emailDomains[rng.IntN(len(emailDomains))]
				c.Email = fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i, domain)
			}
			if !yield(c) {
				return
			}
		}
	}
}

// FromReader yields the contacts of a YAML export.
func FromReader(r io.Reader) (iter.Seq[core.Contact], error) {
	contacts, err := export.ReadYAML(r)
	if err != nil {
		return nil, err
	}
	return slices.Values(contacts), nil
}

// FromFile yields the contacts of a YAML export file.
func FromFile(path string) (iter.Seq[core.Contact], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromReader(f)
}
