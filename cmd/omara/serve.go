package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/omara/internal/api"
	"github.com/erazemk/omara/internal/auth"
	"github.com/erazemk/omara/internal/recognition"
	"github.com/erazemk/omara/internal/store"
	"github.com/erazemk/omara/internal/weather"
)

// passcodeLength is the length of generated passcodes.
const passcodeLength = 12

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the store and generate the owner's passcode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			ctx := cmd.Context()
			if _, err := store.GetPasscodeHash(ctx, s.KV()); err == nil && !force {
				return errors.New("store already initialized (use --force to reset the passcode)")
			} else if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}

			passcode, err := auth.GeneratePasscode(passcodeLength)
			if err != nil {
				return fmt.Errorf("generating passcode: %w", err)
			}
			hash, err := auth.HashPasscode(passcode)
			if err != nil {
				return err
			}
			if err := store.SetPasscodeHash(ctx, s.KV(), hash); err != nil {
				return err
			}
			if force {
				// Tokens issued under the old passcode stop working.
				if _, err := store.NextSessionGeneration(ctx, s.KV()); err != nil {
					return err
				}
			}
			if _, err := store.GetJWTSecret(ctx, s.KV()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Store initialized: %s (%s)\n", a.cfg.DBPath(), a.cfg.Backend)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  Passcode: %s\n", passcode)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Save this passcode, it cannot be recovered.")
			fmt.Fprintln(out, "It can be changed from the app after logging in.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace an existing passcode")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			// Load JWT secret from the store (auto-generated on first run).
			jwtSecret, err := store.GetJWTSecret(cmd.Context(), s.KV())
			if err != nil {
				return fmt.Errorf("getting JWT secret: %w", err)
			}

			if _, err := store.GetPasscodeHash(cmd.Context(), s.KV()); errors.Is(err, store.ErrNotFound) {
				slog.Warn("no passcode set, run 'omara init' before logging in")
			}

			router := api.NewRouter(api.Deps{
				Store:       s,
				JWTSecret:   jwtSecret,
				Weather:     weather.NewMock(a.cfg.Weather.Location, uint64(time.Now().UnixNano())),
				Recognizer:  recognition.Mock{},
				OutfitCount: a.cfg.Outfits.Count,
			})

			server := &http.Server{
				Addr:              a.cfg.Addr,
				Handler:           api.LoggingMiddleware(router),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			// Graceful shutdown on SIGINT/SIGTERM.
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			go func() {
				sig := <-quit
				slog.Info("shutdown signal received", "signal", sig.String())

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := server.Shutdown(ctx); err != nil {
					slog.Error("server forced to shutdown", "error", err)
				}
			}()

			slog.Info("server started", "addr", a.cfg.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}

			slog.Info("server stopped, closing store")
			return nil
		},
	}
}
