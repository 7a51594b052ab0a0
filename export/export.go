// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package export renders contact lists as YAML documents or XLSX workbooks.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/phonebook/core"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Contacts"

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown export format")

// Format selects an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts yaml, yml or xlsx in any case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Write renders contacts to w in the given format.
func Write(w io.Writer, format Format, contacts []core.Contact) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, contacts)
	case FormatXLSX:
		return WriteXLSX(w, contacts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

type record struct {
	Name     string `yaml:"name"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email,omitempty"`
	Category string `yaml:"category"`
}

type document struct {
	Contacts []record `yaml:"contacts"`
}

// WriteYAML writes contacts as a YAML document with a top-level contacts list.
func WriteYAML(w io.Writer, contacts []core.Contact) error {
	doc := document{Contacts: make([]record, len(contacts))}
	for i, c := range contacts {
		doc.Contacts[i] = record(c)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// ReadYAML parses a document produced by WriteYAML.
func ReadYAML(r io.Reader) ([]core.Contact, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []core.Contact{}, nil
		}
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	contacts := make([]core.Contact, len(doc.Contacts))
	for i, rec := range doc.Contacts {
		contacts[i] = core.Contact(rec)
	}
	return contacts, nil
}

var header = []any{"Name", "Phone", "Email", "Category"}

// WriteXLSX writes contacts as a workbook with one sheet and a header row.
func WriteXLSX(w io.Writer, contacts []core.Contact) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, c := range contacts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{c.Name, c.Phone, c.Email, c.Category}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
