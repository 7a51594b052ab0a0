package seed

import (
	"bytes"
	"slices"
	"testing"

	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	categories := []string{"Clients", "Vendors"}
	contacts := slices.Collect(Sample(30, categories, 42))
	require.Len(t, contacts, 30)

	phones := make(map[string]struct{})
	for i, c := range contacts {
		assert.NotEmpty(t, c.Name)
		assert.Contains(t, categories, c.Category)
		if i%3 == 2 {
			assert.Empty(t, c.Email)
		} else {
			assert.Contains(t, c.Email, "@")
		}
		phones[c.Phone] = struct{}{}
	}
	assert.Len(t, phones, 30, "phones must be unique")

	assert.Equal(t, contacts, slices.Collect(Sample(30, categories, 42)), "same seed, same contacts")
	assert.NotEqual(t, contacts, slices.Collect(Sample(30, categories, 43)))
}

func TestSample_StopsEarly(t *testing.T) {
	count := 0
	for range Sample(100, core.DefaultCategories(), 1) {
		count++
		if count == 5 {
			break
		}
	}
	assert.Equal(t, 5, count)
}

func TestSample_NoCategories(t *testing.T) {
	assert.Empty(t, slices.Collect(Sample(10, nil, 1)))
}

func TestFromReader(t *testing.T) {
	want := []core.Contact{
		{Name: "Alice", Phone: "111", Email: "alice@example.com", Category: "Family"},
		{Name: "Bob", Phone: "222", Category: "Work"},
	}
	var buf bytes.Buffer
	require.NoError(t, export.WriteYAML(&buf, want))

	source, err := FromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, slices.Collect(source))

	_, err = FromReader(bytes.NewBufferString("contacts: {not: [a list"))
	assert.Error(t, err)
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile(t.TempDir() + "/missing.yaml")
	assert.Error(t, err)
}
