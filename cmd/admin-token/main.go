package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fansite-cms/api/internal/service"
	"github.com/fansite-cms/api/pkg/jwt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "admin-token",
		Short: "Admin credential utilities for the fan site API",
		Long: `Admin credential utilities for the fan site API.

Available subcommands:
  sign - Sign a session token for scripted calls against the API
  hash - Produce a bcrypt hash for ADMIN_PASSWORD_HASH`,
		SilenceUsage: true,
	}
	root.AddCommand(newSignCmd(), newHashCmd())
	return root
}

type signOptions struct {
	secret  string
	email   string
	issuer  string
	expMins int
	json    bool
}

func newSignCmd() *cobra.Command {
	opts := &signOptions{}
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign an admin session token",
		Long: `Sign an admin session token with the server's JWT secret.

The token is accepted by every admin route, either as the session cookie
or in an Authorization: Bearer header.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.secret, "secret", os.Getenv("JWT_SECRET"), "JWT signing secret (default $JWT_SECRET)")
	cmd.Flags().StringVar(&opts.email, "email", os.Getenv("ADMIN_EMAIL"), "admin email (default $ADMIN_EMAIL)")
	cmd.Flags().StringVar(&opts.issuer, "issuer", "fansite-api", "JWT issuer")
	cmd.Flags().IntVar(&opts.expMins, "exp", 60*24, "token lifetime in minutes")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output as JSON")
	return cmd
}

func runSign(out io.Writer, opts *signOptions) error {
	if opts.email == "" {
		return errors.New("--email or ADMIN_EMAIL is required")
	}

	svc, err := jwt.NewService(jwt.Config{
		Secret:         opts.secret,
		Issuer:         opts.issuer,
		ExpirationMins: opts.expMins,
	})
	if err != nil {
		return fmt.Errorf("create JWT service: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(opts.email))
	token, expiresAt, err := svc.Sign(email, email, jwt.RoleAdmin)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"token":     token,
			"expiresAt": expiresAt.UTC().Format(time.RFC3339),
			"email":     email,
			"role":      jwt.RoleAdmin,
		})
	}

	fmt.Fprintln(out, "Admin Token")
	fmt.Fprintln(out, "===========")
	fmt.Fprintf(out, "Email:    %s\n", email)
	fmt.Fprintf(out, "Expires:  %s\n", expiresAt.UTC().Format(time.RFC3339))
	fmt.Fprintln(out)
	fmt.Fprintln(out, token)
	return nil
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [password]",
		Short: "Hash an admin password with bcrypt",
		Long: `Hash an admin password with bcrypt for ADMIN_PASSWORD_HASH.

The password is read from the first argument, or from the first line of
stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			hash, err := service.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}

func readPassword(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		if args[0] == "" {
			return "", errors.New("password must not be empty")
		}
		return args[0], nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password must not be empty")
	}
	return line, nil
}
