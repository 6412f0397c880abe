package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vapetrack/vapetrack/internal/daemon"
	"github.com/vapetrack/vapetrack/internal/infra/remote"
)

func init() {
	accountSignInCmd.Flags().StringVar(&accountEmail, "email", "", "Account email")
	accountSignInCmd.Flags().StringVar(&accountPassword, "password", "", "Account password")
	_ = accountSignInCmd.MarkFlagRequired("email")
	_ = accountSignInCmd.MarkFlagRequired("password")

	accountSignUpCmd.Flags().StringVar(&accountEmail, "email", "", "Account email")
	accountSignUpCmd.Flags().StringVar(&accountPassword, "password", "", "Account password")
	accountSignUpCmd.Flags().StringVar(&accountDisplay, "name", "", "Display name")
	_ = accountSignUpCmd.MarkFlagRequired("email")
	_ = accountSignUpCmd.MarkFlagRequired("password")

	accountCmd.AddCommand(accountSignInCmd)
	accountCmd.AddCommand(accountSignUpCmd)
	accountCmd.AddCommand(accountSignOutCmd)
	rootCmd.AddCommand(accountCmd)
}

var (
	accountEmail    string
	accountPassword string
	accountDisplay  string
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the optional sync account",
}

var accountSignInCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in to the sync backend",
	RunE:  runAccountSignIn,
}

var accountSignUpCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a sync account",
	RunE:  runAccountSignUp,
}

var accountSignOutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out of the sync backend",
	RunE:  runAccountSignOut,
}

// syncClient builds a remote client from config, requiring sync to be
// enabled.
func syncClient() (*remote.Client, error) {
	cfg, err := daemon.LoadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Sync.Enabled || cfg.Sync.Endpoint == "" {
		return nil, fmt.Errorf("sync is disabled; set [sync] enabled and endpoint in config.toml")
	}
	return remote.NewClient(cfg.Sync.Endpoint), nil
}

func runAccountSignIn(cmd *cobra.Command, args []string) error {
	c, err := syncClient()
	if err != nil {
		return err
	}
	sess, err := c.SignIn(context.Background(), accountEmail, accountPassword)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s.\n", sess.Email)
	return nil
}

func runAccountSignUp(cmd *cobra.Command, args []string) error {
	c, err := syncClient()
	if err != nil {
		return err
	}
	sess, err := c.SignUp(context.Background(), accountEmail, accountPassword, accountDisplay)
	if err != nil {
		return err
	}
	fmt.Printf("Account created for %s.\n", sess.Email)
	return nil
}

func runAccountSignOut(cmd *cobra.Command, args []string) error {
	c, err := syncClient()
	if err != nil {
		return err
	}
	if err := c.SignOut(context.Background()); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}
