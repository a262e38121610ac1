package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/parth3300/portfolio/internal/catalog"
	"github.com/parth3300/portfolio/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site",
	Long: `Serves the portfolio page: hero, services, project case studies and the
contact section, with HTMX fragments for the interactive pieces.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate the built-in content catalog and list its entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Default()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Services (%d):\n", len(cat.Services))
		for _, s := range cat.Services {
			fmt.Fprintf(out, "  %-22s %s [%s]\n", s.Slug, s.Title, strings.Join(s.Technologies, ", "))
		}
		fmt.Fprintf(out, "Projects (%d):\n", len(cat.Projects))
		for _, p := range cat.Projects {
			fmt.Fprintf(out, "  %-22s %s (%d images)\n", p.Slug, p.Title, len(p.Images))
		}
		fmt.Fprintf(out, "Hiring platforms (%d):\n", len(cat.Platforms))
		for _, p := range cat.Platforms {
			fmt.Fprintf(out, "  %-22s %s\n", p.Name, p.URL)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
	rootCmd.AddCommand(serveCmd, catalogCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	st, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	srv, err := newServer(cfg, cat, st, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Portfolio listening on %s", cfg.Addr())
	if err := srv.run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Println("Portfolio stopped")
	return nil
}
