package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdrmenezes/basic-todo/internal/auth"
	"github.com/pdrmenezes/basic-todo/internal/credential"
	"github.com/pdrmenezes/basic-todo/internal/model"
	"github.com/pdrmenezes/basic-todo/internal/store"
)

var loginOpts struct {
	externalID string
	email      string
	firstName  string
	lastName   string
	imageURL   string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and cache a session token",
	Long: `Sign in with an identity asserted by your auth provider and cache the
resulting session token in the system keyring. Subsequent runs with storage
mode "sqlite" use the cached session to scope the board to your account.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the cached session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := credential.Delete(sessionTokenKey); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginOpts.externalID, "id", "", "auth provider user id (required)")
	loginCmd.Flags().StringVar(&loginOpts.email, "email", "", "email address (required)")
	loginCmd.Flags().StringVar(&loginOpts.firstName, "first-name", "", "first name")
	loginCmd.Flags().StringVar(&loginOpts.lastName, "last-name", "", "last name")
	loginCmd.Flags().StringVar(&loginOpts.imageURL, "image-url", "", "profile image URL")
	loginCmd.MarkFlagRequired("id")
	loginCmd.MarkFlagRequired("email")
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	session := auth.Session{
		IsSignedIn: true,
		IsLoaded:   true,
		ExternalID: loginOpts.externalID,
		Email:      loginOpts.email,
		FirstName:  loginOpts.firstName,
		LastName:   loginOpts.lastName,
		ImageURL:   loginOpts.imageURL,
	}

	s, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	user, err := auth.SyncUser(context.Background(), s, session)
	if err != nil {
		return err
	}

	issuer, err := sessionIssuer(cfg)
	if err != nil {
		return err
	}
	token, err := issuer.Issue(session)
	if err != nil {
		return err
	}
	if err := credential.Set(sessionTokenKey, token); err != nil {
		return err
	}

	fmt.Printf("Signed in as %s (%s).\n", user.Email, user.ExternalID)
	return nil
}
