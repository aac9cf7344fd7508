package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/supreassistant/internal/server/models"
	"github.com/spf13/cobra"
)

func (a *App) newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.register(cmd.Context())
		},
	}
}

func (a *App) newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and print an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.login(cmd.Context())
		},
	}
}

// register prompts for username, email and password and creates an account.
func (a *App) register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	res, err := a.api.Register(ctx, models.UserRegistrationData{Username: username, Email: email, Password: password})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, res.Message)
	a.printToken(res.Token)
	return nil
}

// login prompts for credentials and authenticates.
func (a *App) login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, res.Message)
	a.printToken(res.Token)
	return nil
}

func (a *App) printToken(token string) {
	fmt.Fprintf(a.out, "To reuse this session:\n  export ASSISTANT_TOKEN=%s\n", token)
}

// ensureLoggedIn logs in interactively when no token is configured.
func (a *App) ensureLoggedIn(ctx context.Context) error {
	if a.api.Token() != "" {
		return nil
	}
	fmt.Fprintln(a.out, "Not logged in.")
	return a.login(ctx)
}
