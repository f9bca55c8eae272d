// Command hash-generator prints bcrypt hashes for passwords given as
// arguments, for seeding users directly into the database.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

var errNoPasswords = errors.New("usage: hash-generator [-cost N] password [password...]")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("hash-generator", flag.ContinueOnError)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errNoPasswords
	}

	hasher := auth.NewBcryptHasher(*cost)
	for i, password := range fs.Args() {
		if err := domain.ValidatePassword(password); err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
	}
	return nil
}
