package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/VictoriaMetrics/metrics"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"

	"github.com/oaiiae/huma-phonebook/cli/api"
	"github.com/oaiiae/huma-phonebook/cli/logger"
	"github.com/oaiiae/huma-phonebook/tui"
)

const title = "Phonebook"

// Set at build time with -ldflags "-X main.version=...".
var (
	version  = "dev"
	revision = ""
	created  = ""
)

// Options for the CLI. Pass `--port` or set the `SERVICE_PORT` env var.
type Options struct {
	api.ServerOptions
	api.RouterOptions
	api.BookOptions
	logger.Options
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		log := logger.New(&options.Options)
		metriks := metrics.NewSet()
		book := api.NewBook(&options.BookOptions, metriks, log)
		srv := api.NewServer(&options.ServerOptions,
			api.NewRouter(&options.RouterOptions, title, version, revision, created, book, metriks, log),
			log,
		)
		hooks.OnStart(func() {
			log.Info("listening", "addr", srv.Addr, "version", version)
			err := srv.ListenAndServe()
			if err != http.ErrServerClosed {
				log.Error("failed to listen and serve", "err", err)
			} else {
				log.Info("server closed")
			}
		})
		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			err := srv.Shutdown(ctx)
			if err != nil {
				log.Warn("could not shutdown the server", "err", err)
			}
		})
	})

	root := cli.Root()
	root.Use = "phonebook"
	root.Short = "An address book served over HTTP"
	root.Version = version
	root.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Edit the address book in the terminal",
		Run: humacli.WithOptions(func(cmd *cobra.Command, _ []string, options *Options) {
			// the terminal belongs to the UI
			if options.File == "" || options.File == "-" {
				options.File = os.DevNull
			}
			log := logger.New(&options.Options)
			book := api.NewBook(&options.BookOptions, nil, log)
			_, err := tea.NewProgram(tui.New(cmd.Context(), book), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				log.Error("terminal ui failed", "err", err)
				os.Exit(1)
			}
		}),
	})

	cli.Run()
}
