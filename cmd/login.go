// ABOUTME: Login command for the agriai CLI
// ABOUTME: Prompts for credentials when not supplied and populates the session

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gitesh-2005/AgriAI/internal/auth"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the AgriAI backend",
	Long:  `Exchange your email and password for a session. With no flags an interactive form is shown.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, loginEmail, loginPassword)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer, email, password string) int {
	if email == "" || password == "" {
		var err error
		email, password, err = promptCredentials(email, password)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	cfg := loadConfig()
	store := openSession(cfg)
	a := auth.New(newClient(cfg, store), store)

	profile, err := a.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Logged in as %s (%s)\n", profile.FullName, profile.Email)
	return 0
}

// promptCredentials gathers missing credentials via an interactive form
func promptCredentials(email, password string) (string, string, error) {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("farmer@example.com").
				Value(&email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}
	if email == "" || password == "" {
		return "", "", errors.New("email and password are required")
	}
	return email, password, nil
}
