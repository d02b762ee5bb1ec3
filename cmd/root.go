package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdrmenezes/basic-todo/internal/app"
	"github.com/pdrmenezes/basic-todo/internal/auth"
	"github.com/pdrmenezes/basic-todo/internal/board"
	"github.com/pdrmenezes/basic-todo/internal/credential"
	"github.com/pdrmenezes/basic-todo/internal/localstore"
	"github.com/pdrmenezes/basic-todo/internal/model"
	"github.com/pdrmenezes/basic-todo/internal/store"
)

const sessionTokenKey = "session-token"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "basic-todo",
	Short: "Personal weekly todo board",
	Long: `A personal weekly todo board: todos live in day columns from monday
through the weekend, and can be added, edited, completed, deleted, and moved
between days.

Without an account todos are kept in a local JSON file. With storage mode
"sqlite" the board is backed by the database and scoped to the signed-in
user (see "basic-todo login").`,
	RunE: runBoard,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgPath, "config", model.DefaultConfigPath(), "config file path")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	persister, cleanup, err := openPersister(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	m := app.New(board.New(persister))
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// openPersister picks the board's backing store from config: the local JSON
// file, or the database scoped to the signed-in user.
func openPersister(cfg *model.AppConfig) (board.Persister, func(), error) {
	if cfg.Storage.Mode == model.StorageLocal {
		return localstore.New(cfg.Storage.DataFile), func() {}, nil
	}

	s, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, err
	}

	user, err := signedInUser(cfg, s)
	if err != nil {
		s.Close()
		return nil, nil, err
	}

	return store.NewUserPersister(s, user.ID), func() { s.Close() }, nil
}

// signedInUser verifies the cached session token and resolves its identity
// to the internal user record.
func signedInUser(cfg *model.AppConfig, s store.Store) (*model.User, error) {
	token, err := credential.Get(sessionTokenKey)
	if err != nil {
		return nil, fmt.Errorf("please sign in first: basic-todo login")
	}

	issuer, err := sessionIssuer(cfg)
	if err != nil {
		return nil, err
	}

	session, err := issuer.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("session expired, please sign in again: basic-todo login")
	}

	return auth.SyncUser(context.Background(), s, session)
}

func sessionIssuer(cfg *model.AppConfig) (*auth.TokenIssuer, error) {
	key, err := credential.EnsureSigningKey(cfg.Auth.SigningKeyRef)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(cfg.Auth.SessionTTLHours) * time.Hour
	return auth.NewTokenIssuer(key, ttl), nil
}
