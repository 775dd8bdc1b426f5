package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tradecal/chinacal/internal/server"
	"golang.org/x/term"
)

func hashPasswordCmd() *cobra.Command {
	var user string
	var out string

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Create a basic-auth credentials file for the API",
		Long:  "Prompts for a password, hashes it with argon2id and writes a user:hash credentials file referenced by the 'auth_file' config key.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(os.Stderr, "Password: ")
			password, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			fmt.Fprint(os.Stderr, "Repeat password: ")
			repeat, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if string(password) != string(repeat) {
				return fmt.Errorf("passwords do not match")
			}
			if strings.TrimSpace(string(password)) == "" {
				return fmt.Errorf("password must not be empty")
			}

			if err := server.CreateAuthFile(out, user, string(password)); err != nil {
				return err
			}
			fmt.Printf("credentials for %q written to %s\n", user, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "admin", "Basic-auth user name")
	cmd.Flags().StringVar(&out, "out", "auth", "Credentials file path")

	return cmd
}
