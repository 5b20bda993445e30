package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"PalmCare/cache"
	"PalmCare/config"
	"PalmCare/controllers"
	"PalmCare/database"
	"PalmCare/logger"
	"PalmCare/models"
	"PalmCare/navigation"
	"PalmCare/routes"
	"PalmCare/services"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "palmcare",
		Short:         "PalmCare Connect clinic workflow server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(routesCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the PalmCare API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runServer(cfg, logger.New(cfg))
		},
	}
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the navigation route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tICON\tBADGE")
			for _, route := range navigation.Routes() {
				badge := route.Stage
				if badge == "" {
					badge = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", route.Name, route.Path, route.Icon, badge)
			}
			return w.Flush()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the mock data into a fresh store and print what it holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg).Level(zerolog.WarnLevel)

			ctx := cmd.Context()
			db, err := database.InitDB(ctx, log)
			if err != nil {
				return err
			}
			svc := services.NewServices(db, cache.NewCache(nil), cfg, log, nil)
			summary, err := svc.Seed.Seed(ctx)
			if err != nil {
				return err
			}
			printSeedSummary(cmd, summary)
			return nil
		},
	}
}

func printSeedSummary(cmd *cobra.Command, summary *services.SeedSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Patients:        %d\n", summary.Patients)
	fmt.Fprintf(out, "Cases:           %d\n", summary.Cases)
	fmt.Fprintf(out, "Inventory items: %d\n", summary.InventoryItems)
	fmt.Fprintf(out, "Invoices:        %d\n", summary.Invoices)
	fmt.Fprintf(out, "Payments:        %d\n", summary.Payments)
	fmt.Fprintf(out, "Notifications:   %d\n", summary.Notifications)

	stages := make([]models.Stage, 0, len(summary.Stages))
	for stage := range summary.Stages {
		stages = append(stages, stage)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i].Order() < stages[j].Order() })
	fmt.Fprintln(out, "Cases by stage:")
	for _, stage := range stages {
		fmt.Fprintf(out, "  %-13s %d\n", stage, summary.Stages[stage])
	}
}

func runServer(cfg *config.AppConfig, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.InitDB(ctx, log)
	if err != nil {
		return err
	}

	redisClient, err := database.InitializeRedis(ctx, cfg, log)
	if err != nil {
		return err
	}
	checks := map[string]controllers.HealthCheck{}
	if redisClient != nil {
		defer redisClient.Close()
		go database.MonitorRedisPool(ctx, redisClient, time.Minute, log)
		checks["redis"] = func(ctx context.Context) error { return redisPing(ctx, redisClient) }
	}

	svc := services.NewServices(db, cache.NewCache(redisClient), cfg, log, services.NewMailer(cfg))
	if cfg.SeedMockData {
		if _, err := svc.Seed.Seed(ctx); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        routes.SetupRoutes(svc, cfg, log, checks),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	serveErr := make(chan error, 1)

	go func() {
		defer wg.Done()
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("listen and serve: %w", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Info().Msg("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	wg.Wait()
	log.Info().Msg("Server exited gracefully")
	return nil
}

func redisPing(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
