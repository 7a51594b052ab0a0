package export

import (
	"bytes"
	"testing"

	"github.com/poiesic/phonebook/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sample = []core.Contact{
	{Name: "Alice", Phone: "111", Email: "alice@example.com", Category: "Family"},
	{Name: "Bob", Phone: "222", Category: "Work"},
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sample))

	out := buf.String()
	assert.Contains(t, out, "contacts:")
	assert.Contains(t, out, "name: Alice")
	assert.Contains(t, out, "email: alice@example.com")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("email:")), "empty email is omitted")

	got, err := ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestWriteYAML_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, nil))
	assert.Equal(t, "contacts: []\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Phone", "Email", "Category"}, rows[0])
	assert.Equal(t, []string{"Alice", "111", "alice@example.com", "Family"}, rows[1])
	assert.Equal(t, []string{"Bob", "222", "", "Work"}, rows[2])
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "yaml", want: FormatYAML},
		{input: "YML", want: FormatYAML},
		{input: "xlsx", want: FormatXLSX},
		{input: "csv", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrite_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sample))
	assert.Contains(t, buf.String(), "name: Bob")

	assert.ErrorIs(t, Write(&buf, Format("pdf"), sample), ErrUnknownFormat)
}
