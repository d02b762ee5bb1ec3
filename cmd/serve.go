package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdrmenezes/basic-todo/internal/model"
	"github.com/pdrmenezes/basic-todo/internal/store"
	"github.com/pdrmenezes/basic-todo/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web board",
	Long: `Serve the board over HTTP. The web surface always uses the SQLite
store: each signed-in user sees their own todos, and visitors are sent to
the sign-in page.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	s, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	issuer, err := sessionIssuer(cfg)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(s, issuer)
	if err != nil {
		return err
	}

	log.Printf("listening on http://%s", cfg.Server.ListenAddr)
	return http.ListenAndServe(cfg.Server.ListenAddr, srv.Handler())
}
