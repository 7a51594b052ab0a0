package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/poiesic/phonebook/core"
	"github.com/poiesic/phonebook/directory"
	"github.com/poiesic/phonebook/export"
	"github.com/urfave/cli/v2"
)

var errNoSelector = errors.New("exactly one of --name or --phone is required")

// withDirectory opens the phonebook, runs fn and closes it again.
func withDirectory(c *cli.Context, fn func(dir directory.Directory) error) error {
	pb, err := openPhonebook(c)
	if err != nil {
		return err
	}
	defer pb.Close()
	return fn(pb.Directory())
}

func selector(c *cli.Context) (string, directory.SearchField, error) {
	name, phone := strings.TrimSpace(c.String("name")), strings.TrimSpace(c.String("phone"))
	switch {
	case name != "" && phone == "":
		return name, directory.ByName, nil
	case phone != "" && name == "":
		return phone, directory.ByPhone, nil
	default:
		return "", 0, errNoSelector
	}
}

func addCommand(c *cli.Context) error {
	input := contactInput{
		Name:     strings.TrimSpace(c.String("name")),
		Phone:    strings.TrimSpace(c.String("phone")),
		Email:    strings.TrimSpace(c.String("email")),
		Category: strings.TrimSpace(c.String("category")),
	}
	if err := newInputValidator().Validate(input); err != nil {
		return err
	}

	return withDirectory(c, func(dir directory.Directory) error {
		return addContact(c.Context, c.App.Writer, dir, input)
	})
}

func addContact(ctx context.Context, out io.Writer, dir directory.Directory, input contactInput) error {
	err := dir.AddContact(ctx, core.Contact(input))
	switch {
	case errors.Is(err, core.ErrDuplicatePhone):
		return fmt.Errorf("phone number %s already exists", input.Phone)
	case errors.Is(err, core.ErrInvalidCategory):
		return fmt.Errorf("invalid category %q, use one of: %s", input.Category, strings.Join(dir.Categories(), ", "))
	case err != nil:
		return err
	}
	fmt.Fprintf(out, "Contact %s added\n", input.Name)
	return nil
}

func listCommand(c *cli.Context) error {
	return withDirectory(c, func(dir directory.Directory) error {
		printContacts(c.App.Writer, dir.Contacts())
		return nil
	})
}

func searchCommand(c *cli.Context) error {
	term, field, err := selector(c)
	if err != nil {
		return err
	}
	return withDirectory(c, func(dir directory.Directory) error {
		return searchContact(c.App.Writer, dir, term, field)
	})
}

func searchContact(out io.Writer, dir directory.Directory, term string, field directory.SearchField) error {
	contact, ok := dir.Search(term, field)
	if !ok {
		return fmt.Errorf("no contact with %s %q", field, term)
	}
	fmt.Fprint(out, contact)
	return nil
}

func updateCommand(c *cli.Context) error {
	term, field, err := selector(c)
	if err != nil {
		return err
	}
	input := updateInput{
		Phone: strings.TrimSpace(c.String("new-phone")),
		Email: strings.TrimSpace(c.String("new-email")),
	}
	if err := newInputValidator().Validate(input); err != nil {
		return err
	}

	return withDirectory(c, func(dir directory.Directory) error {
		return updateContact(c.Context, c.App.Writer, dir, term, field, input)
	})
}

func updateContact(ctx context.Context, out io.Writer, dir directory.Directory, term string, field directory.SearchField, input updateInput) error {
	var changes directory.Changes
	if input.Phone != "" {
		changes.Phone = &input.Phone
	}
	if input.Email != "" {
		changes.Email = &input.Email
	}
	if changes.Empty() {
		return errors.New("nothing to update: pass --new-phone and/or --new-email")
	}

	outcome, err := dir.UpdateContact(ctx, term, field, changes)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return fmt.Errorf("no contact with %s %q", field, term)
	case errors.Is(err, core.ErrDuplicatePhone):
		return fmt.Errorf("phone number %s already exists", input.Phone)
	case err != nil:
		return err
	}
	reportOutcome(out, "updated", outcome)
	return nil
}

func deleteCommand(c *cli.Context) error {
	term, field, err := selector(c)
	if err != nil {
		return err
	}

	return withDirectory(c, func(dir directory.Directory) error {
		contact, ok := dir.Search(term, field)
		if !ok {
			return fmt.Errorf("no contact with %s %q", field, term)
		}
		if !c.Bool("yes") {
			fmt.Fprint(c.App.Writer, contact)
			if !confirm(c.App.Reader, c.App.Writer, "Delete this contact?") {
				fmt.Fprintln(c.App.Writer, "Deletion cancelled")
				return nil
			}
		}
		return deleteContact(c.Context, c.App.Writer, dir, contact.Phone, directory.ByPhone)
	})
}

func deleteContact(ctx context.Context, out io.Writer, dir directory.Directory, term string, field directory.SearchField) error {
	outcome, err := dir.DeleteContact(ctx, term, field)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("no contact with %s %q", field, term)
	}
	if err != nil {
		return err
	}
	reportOutcome(out, "deleted", outcome)
	return nil
}

func sortCommand(c *cli.Context) error {
	alg, err := directory.ParseAlgorithm(c.String("algorithm"))
	if err != nil {
		return err
	}
	return withDirectory(c, func(dir directory.Directory) error {
		return sortContacts(c.App.Writer, dir, alg)
	})
}

func sortContacts(out io.Writer, dir directory.Directory, alg directory.Algorithm) error {
	if err := dir.SortByName(alg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Contacts sorted using %s sort\n", alg)
	printContacts(out, dir.Contacts())
	return nil
}

func checkCommand(c *cli.Context) error {
	phone := strings.TrimSpace(c.Args().First())
	if phone == "" {
		return errors.New("a phone number is required")
	}
	return withDirectory(c, func(dir directory.Directory) error {
		checkDuplicate(c.App.Writer, dir, phone)
		return nil
	})
}

func checkDuplicate(out io.Writer, dir directory.Directory, phone string) {
	if dir.IsDuplicate(phone) {
		fmt.Fprintf(out, "Phone number %s already exists\n", phone)
		return
	}
	fmt.Fprintf(out, "Phone number %s is available\n", phone)
}

func categoryCommand(c *cli.Context) error {
	category := strings.TrimSpace(c.Args().First())
	if category == "" {
		return errors.New("a category is required")
	}
	return withDirectory(c, func(dir directory.Directory) error {
		return listCategory(c.App.Writer, dir, category)
	})
}

func listCategory(out io.Writer, dir directory.Directory, category string) error {
	valid := slices.ContainsFunc(dir.Categories(), func(name string) bool {
		return strings.EqualFold(name, category)
	})
	if !valid {
		return fmt.Errorf("invalid category %q, use one of: %s", category, strings.Join(dir.Categories(), ", "))
	}
	contacts := dir.ListByCategory(category)
	fmt.Fprintf(out, "Category %s: %d contact(s)\n", category, len(contacts))
	for _, contact := range contacts {
		fmt.Fprintln(out)
		fmt.Fprint(out, contact)
	}
	return nil
}

func categoriesCommand(c *cli.Context) error {
	return withDirectory(c, func(dir directory.Directory) error {
		printCategories(c.App.Writer, dir)
		return nil
	})
}

func printCategories(out io.Writer, dir directory.Directory) {
	for _, cc := range dir.CategoryCounts() {
		fmt.Fprintf(out, "%-10s %d contact(s)\n", cc.Category, cc.Count)
	}
}

func exportCommand(c *cli.Context) error {
	output := c.String("output")
	formatName := c.String("format")
	if formatName == "" {
		formatName = "yaml"
		if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
			formatName = ext
		}
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	return withDirectory(c, func(dir directory.Directory) error {
		contacts := dir.Contacts()
		if category := c.String("category"); category != "" {
			contacts = dir.ListByCategory(category)
		}

		w := c.App.Writer
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		if err := export.Write(w, format, contacts); err != nil {
			return err
		}
		if output != "" {
			fmt.Fprintf(c.App.Writer, "Exported %d contact(s) to %s\n", len(contacts), output)
		}
		return nil
	})
}

func clearCommand(c *cli.Context) error {
	return withDirectory(c, func(dir directory.Directory) error {
		if !c.Bool("yes") && !confirm(c.App.Reader, c.App.Writer, fmt.Sprintf("Delete all %d contacts?", dir.Len())) {
			fmt.Fprintln(c.App.Writer, "Nothing deleted")
			return nil
		}
		if err := dir.Clear(c.Context); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, "All contacts deleted")
		return nil
	})
}

func printContacts(out io.Writer, contacts []core.Contact) {
	if len(contacts) == 0 {
		fmt.Fprintln(out, "Phonebook is empty")
		return
	}
	fmt.Fprintf(out, "Total contacts: %d\n", len(contacts))
	for i, contact := range contacts {
		fmt.Fprintf(out, "\n%d.\n", i+1)
		fmt.Fprint(out, contact)
	}
}

// reportOutcome prints the result of an update or delete, warning when the
// change was not saved.
func reportOutcome(out io.Writer, verb string, outcome directory.Outcome) {
	if outcome.Drifted() {
		fmt.Fprintf(out, "Contact %s in memory but not saved: %v\n", verb, outcome.StoreErr)
		return
	}
	fmt.Fprintf(out, "Contact %s\n", verb)
}
