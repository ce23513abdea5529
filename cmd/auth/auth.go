package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dfir-analyzer/dfirctl/internal/api"
	"github.com/dfir-analyzer/dfirctl/internal/auth"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/config"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/logger"
)

// RunOptionsAuth holds the arguments for the auth subcommands.
type RunOptionsAuth struct {
	Email    string
	Name     string
	Password string
}

// Global variables for configuration and command arguments
var (
	AppConfig   *config.Config
	authOptions RunOptionsAuth

	exampleAuthUsage = `  # Log in and persist the access token
  dfirctl auth login --email analyst@example.com

  # Register a new account
  dfirctl auth register --email analyst@example.com --name "Jordan Analyst"

  # Show the current account
  dfirctl auth whoami

  # Drop the stored credentials
  dfirctl auth logout`
)

// AuthCmd groups the credential flows.
var AuthCmd = &cobra.Command{
	Use:                   "auth [command]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAuthUsage,
	Short:                 "Manage the stored analyzer credentials",
}

var loginCmd = &cobra.Command{
	Use:                   "login --email EMAIL [--password PASSWORD]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Authenticate and persist the access token",
	RunE:                  runLoginCommand,
}

var registerCmd = &cobra.Command{
	Use:                   "register --email EMAIL --name NAME [--password PASSWORD]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Create an account and persist its first access token",
	RunE:                  runRegisterCommand,
}

var logoutCmd = &cobra.Command{
	Use:                   "logout",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Remove the stored credentials",
	RunE:                  runLogoutCommand,
}

var whoamiCmd = &cobra.Command{
	Use:                   "whoami",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Show the account behind the stored token",
	RunE:                  runWhoamiCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runLoginCommand executes the login flow.
func runLoginCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-auth")

	if err := validateAuthArgs(&authOptions, false); err != nil {
		logger.Error("invalid auth arguments", "error", err)
		return err
	}

	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	store := auth.NewStore(config.GetCredentialsFile(AppConfig), logger)
	client := api.NewClient(AppConfig, logger, store)

	resp, err := client.Login(cmd.Context(), authOptions.Email, password)
	if err != nil {
		logger.Error("login failed", "email", authOptions.Email, "error", err)
		return err
	}

	if err := store.Set(resp.AccessToken, resp.Name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", resp.Name)
	logger.Info("login completed successfully")
	return nil
}

// runRegisterCommand executes the register flow.
func runRegisterCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-auth")

	if err := validateAuthArgs(&authOptions, true); err != nil {
		logger.Error("invalid auth arguments", "error", err)
		return err
	}

	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	store := auth.NewStore(config.GetCredentialsFile(AppConfig), logger)
	client := api.NewClient(AppConfig, logger, store)

	resp, err := client.Register(cmd.Context(), authOptions.Email, password, authOptions.Name)
	if err != nil {
		logger.Error("registration failed", "email", authOptions.Email, "error", err)
		return err
	}

	if err := store.Set(resp.AccessToken, resp.Name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", resp.Name)
	logger.Info("registration completed successfully")
	return nil
}

// runLogoutCommand drops the stored credentials.
func runLogoutCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-auth")

	store := auth.NewStore(config.GetCredentialsFile(AppConfig), logger)
	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

// runWhoamiCommand shows the account. The server is authoritative; local token
// claims are the offline fallback.
func runWhoamiCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-auth")

	store := auth.NewStore(config.GetCredentialsFile(AppConfig), logger)
	claims, err := store.Claims()
	if err != nil {
		return fmt.Errorf("not logged in")
	}

	client := api.NewClient(AppConfig, logger, store)
	account, err := client.Me(cmd.Context())
	if err != nil {
		logger.Warn("cannot reach the server, showing local token claims", "error", err)
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (offline)\n", claims.Name, claims.Subject)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", account.Name, account.Email)
	}

	if claims.Expired() {
		fmt.Fprintln(cmd.OutOrStdout(), "Warning: the stored token is expired. Log in again.")
	} else if !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(cmd.OutOrStdout(), "Token expires %s\n", claims.ExpiresAt.Format("2006-01-02 15:04 MST"))
	}
	return nil
}

// resolvePassword takes the password flag when given, otherwise prompts
// without echo on a terminal.
func resolvePassword(cmd *cobra.Command) (string, error) {
	if authOptions.Password != "" {
		return authOptions.Password, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("a password must be provided")
	}
	return password, nil
}

// Initialize flags for the auth subcommands.
func init() {
	AuthCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&authOptions.Email, "email", "", "Email address of the account.")
		c.Flags().StringVar(&authOptions.Password, "password", "", "Password. Prompted interactively when omitted.")
	}
	registerCmd.Flags().StringVar(&authOptions.Name, "name", "", "Display name for the new account.")
}
