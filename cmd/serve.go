package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/levelupinstalling/levelup/internal/content"
	"github.com/levelupinstalling/levelup/internal/server"
	"github.com/levelupinstalling/levelup/internal/session"
	"github.com/levelupinstalling/levelup/internal/site"
	"github.com/levelupinstalling/levelup/internal/watch"
)

var (
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site with live interaction state",
	Long: `Starts the HTTP server for the landing and contact pages. Each visitor gets
their own navigation, accordion and contact draft state, driven by form posts
or the live websocket channel.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload the content file when it changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	if serveWatch {
		cfg.WatchContent = true
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	c, err := loadContent(cfg)
	if err != nil {
		return err
	}

	store := session.NewStore(site.SessionOptions(c, cfg.ScrollThreshold), cfg.SessionTTL, logger)
	st, err := site.New(c, store, siteOptions(cfg, logger))
	if err != nil {
		return fmt.Errorf("creating site: %w", err)
	}

	srv := server.New(server.Config{
		Port:           cfg.Port,
		AllowAll:       cfg.AllowAllOrigins,
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger)
	st.RegisterRoutes(srv.Router())

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return store.Run(ctx, sweepInterval(cfg.SessionTTL))
	})

	if cfg.WatchContent && cfg.ContentFile != "" {
		w, err := watch.New(cfg.ContentFile, watch.DefaultDebounce, logger, func(path string) {
			reloadContent(st, path, logger)
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(ctx) })
	}

	fmt.Fprintf(os.Stderr, "levelup %s starting on port %d\n", Version, cfg.Port)
	fmt.Fprintf(os.Stderr, "  Content: %s\n", describeContent(cfg.ContentFile))
	fmt.Fprintf(os.Stderr, "  Sessions expire after %s idle\n", cfg.SessionTTL)

	return g.Wait()
}

// reloadContent swaps in the content at path. A broken file keeps the
// current content.
func reloadContent(st *site.Site, path string, logger *zap.Logger) {
	c, err := content.Load(path)
	if err == nil {
		err = c.Validate()
	}
	if err != nil {
		logger.Warn("content reload failed, keeping current content", zap.String("path", path), zap.Error(err))
		return
	}
	st.SetContent(c)
	logger.Info("content reloaded", zap.String("path", path))
}

func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

func describeContent(path string) string {
	if path == "" {
		return "built-in"
	}
	if _, err := os.Stat(path); err != nil {
		return path + " (missing, using built-in)"
	}
	return path
}
