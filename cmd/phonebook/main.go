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

package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/phonebook"
	"github.com/poiesic/phonebook/config"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	app := newApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "phonebook",
		Usage:     "Personal contact directory",
		Reader:    in,
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Storage backend (badger, sqlite)",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the contact database",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a new contact",
				Action: addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Contact name"},
					&cli.StringFlag{Name: "phone", Aliases: []string{"p"}, Usage: "Phone number"},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address (optional)"},
					&cli.StringFlag{Name: "category", Usage: "Contact category"},
				},
			},
			{
				Name:   "list",
				Usage:  "Display all contacts",
				Action: listCommand,
			},
			{
				Name:   "search",
				Usage:  "Find a contact by name or phone",
				Action: searchCommand,
				Flags:  selectorFlags(),
			},
			{
				Name:   "update",
				Usage:  "Change the phone number or email of a contact",
				Action: updateCommand,
				Flags: append(selectorFlags(),
					&cli.StringFlag{Name: "new-phone", Usage: "New phone number"},
					&cli.StringFlag{Name: "new-email", Usage: "New email address"},
				),
			},
			{
				Name:   "delete",
				Usage:  "Delete a contact",
				Action: deleteCommand,
				Flags: append(selectorFlags(),
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Do not ask for confirmation"},
				),
			},
			{
				Name:   "sort",
				Usage:  "Display contacts sorted by name",
				Action: sortCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "algorithm",
						Aliases: []string{"a"},
						Usage:   "Sorting algorithm (bubble, selection)",
						Value:   "bubble",
					},
				},
			},
			{
				Name:      "check",
				Usage:     "Check whether a phone number is already taken",
				ArgsUsage: "<phone>",
				Action:    checkCommand,
			},
			{
				Name:      "category",
				Usage:     "Display the contacts of one category",
				ArgsUsage: "<category>",
				Action:    categoryCommand,
			},
			{
				Name:   "categories",
				Usage:  "Display every category with its contact count",
				Action: categoriesCommand,
			},
			{
				Name:   "export",
				Usage:  "Export contacts as YAML or XLSX",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (default stdout)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (yaml, xlsx); inferred from --output when empty",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Only export this category",
					},
				},
			},
			{
				Name:   "clear",
				Usage:  "Delete every contact",
				Action: clearCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Do not ask for confirmation"},
				},
			},
			{
				Name:   "shell",
				Usage:  "Start the interactive menu",
				Action: shellCommand,
			},
		},
	}
}

func selectorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Match contact by name (case-insensitive)"},
		&cli.StringFlag{Name: "phone", Aliases: []string{"p"}, Usage: "Match contact by phone number"},
	}
}

// setup loads configuration, applies the global flags on top and installs
// the logger.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("backend") {
		// a defaulted path belongs to the old backend
		if cfg.DBPath == config.DefaultDBPath(cfg.Backend) {
			cfg.DBPath = ""
		}
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := setupLogger(cfg.LogLevel); err != nil {
		return err
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func setupLogger(levelStr string) error {
	levelStr = strings.ToLower(levelStr)

	level, err := config.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// openPhonebook opens the configured database. A store that cannot be read is
// reported but does not stop the command.
func openPhonebook(c *cli.Context) (*phonebook.Phonebook, error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		return nil, fmt.Errorf("configuration not loaded")
	}

	pb, err := phonebook.OpenConfig(c.Context, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open phonebook: %w", err)
	}
	if err := pb.StoreErr(); err != nil {
		fmt.Fprintf(c.App.ErrWriter, "warning: saved contacts could not be loaded, changes will not be saved: %v\n", err)
	}
	return pb, nil
}
