package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/phonebook/directory"
	"github.com/urfave/cli/v2"
)

const menu = `
========== PHONEBOOK ==========
1.  Add contact
2.  Display all contacts
3.  Search contact
4.  Update contact
5.  Delete contact
6.  Sort contacts by name
7.  Check for duplicate phone
8.  View contacts by category
9.  Display all categories
10. Exit
===============================`

func shellCommand(c *cli.Context) error {
	return withDirectory(c, func(dir directory.Directory) error {
		s := &shell{
			ctx: c.Context,
			in:  bufio.NewScanner(c.App.Reader),
			out: c.App.Writer,
			dir: dir,
		}
		s.run()
		return nil
	})
}

// shell is the interactive numbered menu. It keeps one directory open for the
// whole session, so a sort stays in effect until exit.
type shell struct {
	ctx context.Context
	in  *bufio.Scanner
	out io.Writer
	dir directory.Directory
}

func (s *shell) run() {
	for {
		fmt.Fprintln(s.out, menu)
		fmt.Fprintf(s.out, "Total contacts: %d\n", s.dir.Len())

		choice, ok := s.prompt("Enter your choice: ")
		if !ok {
			return
		}

		var err error
		switch choice {
		case "1":
			err = s.add()
		case "2":
			printContacts(s.out, s.dir.Contacts())
		case "3":
			err = s.search()
		case "4":
			err = s.update()
		case "5":
			err = s.delete()
		case "6":
			err = s.sort()
		case "7":
			if phone, ok := s.prompt("Phone number: "); ok {
				checkDuplicate(s.out, s.dir, phone)
			}
		case "8":
			if category, ok := s.prompt(fmt.Sprintf("Category (%s): ", strings.Join(s.dir.Categories(), " | "))); ok {
				err = listCategory(s.out, s.dir, category)
			}
		case "9":
			printCategories(s.out, s.dir)
		case "10":
			fmt.Fprintln(s.out, "Goodbye!")
			return
		default:
			fmt.Fprintln(s.out, "Invalid choice, please try again")
		}
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// prompt prints label and reads one trimmed line. It returns false at end of input.
func (s *shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *shell) add() error {
	var input contactInput
	input.Name, _ = s.prompt("Name: ")
	input.Phone, _ = s.prompt("Phone number: ")
	input.Email, _ = s.prompt("Email (optional, press Enter to skip): ")
	input.Category, _ = s.prompt(fmt.Sprintf("Category (%s): ", strings.Join(s.dir.Categories(), " | ")))

	if err := newInputValidator().Validate(input); err != nil {
		return err
	}
	return addContact(s.ctx, s.out, s.dir, input)
}

// selectContact asks whether to match by name or phone and for the term.
func (s *shell) selectContact() (string, directory.SearchField, error) {
	fmt.Fprintln(s.out, "1. By name")
	fmt.Fprintln(s.out, "2. By phone number")
	choice, _ := s.prompt("Enter choice: ")

	switch choice {
	case "1":
		name, _ := s.prompt("Name: ")
		return name, directory.ByName, nil
	case "2":
		phone, _ := s.prompt("Phone number: ")
		return phone, directory.ByPhone, nil
	default:
		return "", 0, fmt.Errorf("invalid choice %q", choice)
	}
}

func (s *shell) search() error {
	term, field, err := s.selectContact()
	if err != nil {
		return err
	}
	return searchContact(s.out, s.dir, term, field)
}

func (s *shell) update() error {
	term, field, err := s.selectContact()
	if err != nil {
		return err
	}
	if err := searchContact(s.out, s.dir, term, field); err != nil {
		return err
	}

	var input updateInput
	input.Phone, _ = s.prompt("New phone number (press Enter to skip): ")
	input.Email, _ = s.prompt("New email (press Enter to skip): ")
	if input.Phone == "" && input.Email == "" {
		fmt.Fprintln(s.out, "No changes made")
		return nil
	}
	if err := newInputValidator().Validate(input); err != nil {
		return err
	}
	return updateContact(s.ctx, s.out, s.dir, term, field, input)
}

func (s *shell) delete() error {
	term, field, err := s.selectContact()
	if err != nil {
		return err
	}
	if err := searchContact(s.out, s.dir, term, field); err != nil {
		return err
	}
	if !s.confirm("Delete this contact?") {
		fmt.Fprintln(s.out, "Deletion cancelled")
		return nil
	}
	return deleteContact(s.ctx, s.out, s.dir, term, field)
}

func (s *shell) sort() error {
	fmt.Fprintln(s.out, "1. Bubble sort")
	fmt.Fprintln(s.out, "2. Selection sort")
	choice, _ := s.prompt("Choose sorting algorithm: ")

	switch choice {
	case "1":
		return sortContacts(s.out, s.dir, directory.BubbleSort)
	case "2":
		return sortContacts(s.out, s.dir, directory.SelectionSort)
	default:
		return fmt.Errorf("invalid choice %q", choice)
	}
}

func (s *shell) confirm(question string) bool {
	answer, _ := s.prompt(question + " (yes/no): ")
	return isYes(answer)
}

// confirm asks a yes/no question on a one-shot command.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprint(out, question+" (yes/no): ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	return isYes(scanner.Text())
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
