package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oksasatya/gym-membership-directory/config"
	"github.com/oksasatya/gym-membership-directory/internal/application"
	"github.com/oksasatya/gym-membership-directory/internal/container"
	"github.com/oksasatya/gym-membership-directory/internal/domain/entity"
	"github.com/oksasatya/gym-membership-directory/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Bootstrap accounts for the gym membership directory",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newAdminCmd(), newTokenCmd())
	return root
}

// withContainer builds the same dependencies as the API server from the
// environment and closes them when fn returns.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *container.Container) error) error {
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cmd.ErrOrStderr())
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	c, err := container.Build(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer c.Close()
	return fn(ctx, c)
}

// newAdminCmd creates an admin account through the regular signup flow.
func newAdminCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create an admin account (identity and profile)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *container.Container) error {
				svc := application.NewSignupService(c.Identity, c.Profiles, c.Notifier, true, c.Logger)
				p, err := svc.Signup(ctx, application.SignupInput{
					Email:    email,
					Password: password,
					Name:     name,
					Role:     entity.RoleAdmin,
				})
				if err != nil {
					return fmt.Errorf("failed to create admin: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created admin: id=%s email=%s name=%s\n", p.ID, p.Email, p.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// newTokenCmd mints a bearer token for an existing identity. Only the local
// identity driver can issue tokens.
func newTokenCmd() *cobra.Command {
	var id, email string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token (IDENTITY_DRIVER=local only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(_ context.Context, c *container.Container) error {
				if c.Local == nil {
					return errors.New("token minting requires IDENTITY_DRIVER=local")
				}
				tok, exp, err := c.Local.MintToken(entity.Identity{ID: id, Email: email})
				if err != nil {
					return fmt.Errorf("failed to mint token: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\nexpires_at=%s\n", tok, exp.UTC().Format(time.RFC3339))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "user id (token subject)")
	cmd.Flags().StringVar(&email, "email", "", "user email")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
