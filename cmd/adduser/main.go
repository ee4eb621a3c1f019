package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/auth"
	"finance-tracker/internal/config"
	"finance-tracker/internal/logger"
	"finance-tracker/internal/service"
	"finance-tracker/internal/storage"
	"finance-tracker/internal/validation"

	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	defaults := config.Default()

	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	name := fs.String("name", "", "Display name (defaults to the email)")
	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dbPath := fs.String("db", defaults.DBPath, "Path or DSN of the database")
	driver := fs.String("driver", defaults.DBDriver, "Database driver (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -email <email> [-name <name>] [-password <password>] [-db <db_path>] [-driver <driver>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: email")
	}
	if *name == "" {
		*name = *email
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout) // Print newline after password input
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	// Environment wins over flag defaults, never over explicit flags
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if path := os.Getenv("DB_PATH"); path != "" && !set["db"] {
		*dbPath = path
	}
	if d := os.Getenv("DB_DRIVER"); d != "" && !set["driver"] {
		*driver = d
	}

	db, err := storage.Open(*driver, *dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	log := logger.NewWithWriter(stderr).Level(logger.ParseLevel("warn"))
	activities := service.NewActivityService(db, log)
	users := service.NewUserService(db, auth.NewBcryptHasher(defaults.BcryptCost), validation.New(), activities, log)

	user, err := users.Create(context.Background(), service.NewUser{Name: *name, Email: *email, Password: password})
	if err != nil {
		if e := apperr.As(err); e != nil && slices.Contains(e.Details, validation.MsgEmailExists) {
			return fmt.Errorf("user %s already exists", *email)
		}
		if e := apperr.As(err); e != nil && len(e.Details) > 0 {
			return errors.New(strings.Join(e.Details, "; "))
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", user.Email, user.ID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	// Check if stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
