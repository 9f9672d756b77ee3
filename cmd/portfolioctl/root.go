package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vs-portfolio/portfolio/internal/config"
	"github.com/vs-portfolio/portfolio/internal/repository"
	"github.com/vs-portfolio/portfolio/internal/server"
)

// app is the state shared by every subcommand, set up in PersistentPreRunE.
type app struct {
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Manage the portfolio site's admins and résumé",
		Long: `portfolioctl works directly on the store the server uses, configured the
same way: CONFIG_PATH, environment variables and an optional .env file.

Examples:
  portfolioctl create-admin --username owner --password 's3cret!'
  portfolioctl upload-resume ./cv.pdf`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(newCreateAdminCmd(a), newUploadResumeCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Read()
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.SlogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// openStore opens the configured store. The caller closes it.
func (a *app) openStore(ctx context.Context) (repository.Store, error) {
	return server.OpenStore(ctx, a.cfg, a.logger)
}
