// ABOUTME: Register command for the agriai CLI
// ABOUTME: Creates a new account via an interactive form or flags

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
	"github.com/Gitesh-2005/AgriAI/internal/client"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var registerInput client.RegistrationInput

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new AgriAI account",
	Long:  `Register a new account and log in with it. With no flags an interactive form is shown.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout, registerInput)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerInput.Email, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerInput.Password, "password", "", "Account password")
	registerCmd.Flags().StringVar(&registerInput.FullName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerInput.Phone, "phone", "", "Phone number (optional)")
	registerCmd.Flags().StringVar(&registerInput.UserType, "user-type", "farmer", "Account type (farmer, vendor, policymaker, financier)")
	registerCmd.Flags().StringVar(&registerInput.LanguagePreference, "language", "en", "Preferred language (en, hi, mr)")
	registerCmd.Flags().StringVar(&registerInput.Location, "location", "", "Location (optional)")
	registerCmd.Flags().StringVar(&registerInput.FarmSize, "farm-size", "", "Farm size category (optional)")
}

// runRegister executes the registration flow and returns exit code
func runRegister(ctx context.Context, w io.Writer, input client.RegistrationInput) int {
	if input.Email == "" || input.Password == "" || input.FullName == "" {
		var err error
		input, err = promptRegistration(input)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	cfg := loadConfig()
	store := openSession(cfg)
	a := auth.New(newClient(cfg, store), store)

	profile, err := a.Register(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Welcome, %s! Registered and logged in as %s.\n", profile.FullName, profile.Email)
	return 0
}

// promptRegistration gathers registration data via an interactive form
func promptRegistration(input client.RegistrationInput) (client.RegistrationInput, error) {
	if input.UserType == "" {
		input.UserType = "farmer"
	}
	if input.LanguagePreference == "" {
		input.LanguagePreference = "en"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("farmer@example.com").
				Value(&input.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&input.Password),
			huh.NewInput().
				Title("Full name").
				Value(&input.FullName),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Account type").
				Options(
					huh.NewOption("Farmer", "farmer"),
					huh.NewOption("Vendor", "vendor"),
					huh.NewOption("Policymaker", "policymaker"),
					huh.NewOption("Financier", "financier"),
				).
				Value(&input.UserType),
			huh.NewSelect[string]().
				Title("Preferred language").
				Options(
					huh.NewOption("English", "en"),
					huh.NewOption("Hindi", "hi"),
					huh.NewOption("Marathi", "mr"),
				).
				Value(&input.LanguagePreference),
			huh.NewInput().
				Title("Phone (optional)").
				Value(&input.Phone),
			huh.NewInput().
				Title("Location (optional)").
				Placeholder("Pune, Maharashtra").
				Value(&input.Location),
			huh.NewSelect[string]().
				Title("Farm size (optional)").
				Options(
					huh.NewOption("Skip", ""),
					huh.NewOption("Small (under 2 acres)", "small"),
					huh.NewOption("Medium (2-10 acres)", "medium"),
					huh.NewOption("Large (over 10 acres)", "large"),
				).
				Value(&input.FarmSize),
		),
	)
	if err := form.Run(); err != nil {
		return input, err
	}
	if input.Email == "" || input.Password == "" || input.FullName == "" {
		return input, errors.New("email, password, and full name are required")
	}
	return input, nil
}
