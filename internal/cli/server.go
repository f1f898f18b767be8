package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/auctionlaunch/auctiond/internal/bank"
	"github.com/auctionlaunch/auctiond/internal/cache"
	"github.com/auctionlaunch/auctiond/internal/config"
	"github.com/auctionlaunch/auctiond/internal/core/engine"
	grpcserver "github.com/auctionlaunch/auctiond/internal/grpc"
	"github.com/auctionlaunch/auctiond/internal/server/api/jsonrpc"
	"github.com/auctionlaunch/auctiond/internal/storage/auctionstore"
	"github.com/auctionlaunch/auctiond/internal/storage/compression"
	"github.com/auctionlaunch/auctiond/internal/storage/history"
	"github.com/auctionlaunch/auctiond/internal/storage/keyValueDb"
	"github.com/auctionlaunch/auctiond/internal/storage/keyValueDb/leveldb"
	"github.com/auctionlaunch/auctiond/internal/storage/keyValueDb/memory"
	"github.com/auctionlaunch/auctiond/internal/storage/keyValueDb/pebble"
)

// serverCmd represents the server command (default action)
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the auction daemon",
	Long: `Start auctiond, serving the auction registry over HTTP JSON-RPC and
gRPC. On first start the genesis params from the configuration are
written; later starts reuse the stored params.

This is the default command when no subcommand is specified.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return serverCmd.RunE(cmd, args)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	db, closeDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	comp, err := compression.ByName(cfg.Database.Compression)
	if err != nil {
		return err
	}
	store := auctionstore.New(db,
		auctionstore.WithCompressor(comp),
		auctionstore.WithPageLimits(cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit),
	)

	if err := ensureGenesis(cmd.Context(), cfg, store, log); err != nil {
		return err
	}

	opts := []engine.Option{
		engine.WithLogger(log.With().Str("component", "engine").Logger()),
	}

	if cfg.Cache.Enabled {
		c, err := cache.New(cfg.Cache.Size)
		if err != nil {
			return err
		}
		opts = append(opts, engine.WithCache(c))
	}

	if cfg.History.Enabled {
		rec, err := history.Open(cfg.History.Backend, cfg.History.DSN)
		if err != nil {
			return err
		}
		defer rec.Close()
		opts = append(opts, engine.WithHistory(rec))
	}

	eng := engine.New(store, bank.NewLedger(), opts...)

	// The ledger starts empty on every boot; reseed it from the
	// durable registry before accepting operations.
	if err := eng.RestoreCustody(cmd.Context()); err != nil {
		return fmt.Errorf("restore custody: %w", err)
	}

	return serve(cmd.Context(), cfg, eng, log)
}

// openDatabase opens the configured key-value backend. The returned
// close function is safe to call once.
func openDatabase(cfg *config.Config) (keyValueDb.DB, func(), error) {
	switch cfg.Database.Backend {
	case "memory":
		db := memory.NewDB()
		return db, func() { db.Close() }, nil
	case "pebble":
		mgr := pebble.NewManager(cfg.Database.Path)
		db, err := mgr.OpenDB("auctions")
		if err != nil {
			return nil, nil, fmt.Errorf("open pebble database: %w", err)
		}
		return db, func() { mgr.Close() }, nil
	case "leveldb":
		mgr := leveldb.NewManager(cfg.Database.Path)
		db, err := mgr.OpenDB("auctions")
		if err != nil {
			return nil, nil, fmt.Errorf("open leveldb database: %w", err)
		}
		return db, func() { mgr.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown database backend %q", cfg.Database.Backend)
	}
}

// ensureGenesis writes the genesis params on first start and is a no-op
// once the store holds a params record.
func ensureGenesis(ctx context.Context, cfg *config.Config, store *auctionstore.Store, log zerolog.Logger) error {
	params, err := cfg.Genesis.Params()
	if err != nil {
		return err
	}

	err = store.InitGenesis(ctx, params)
	switch {
	case err == nil:
		log.Info().Str("admin", params.Admin).Msg("genesis params written")
		return nil
	case errors.Is(err, auctionstore.ErrAlreadyInitialized):
		return nil
	default:
		return fmt.Errorf("initialize genesis: %w", err)
	}
}

func serve(ctx context.Context, cfg *config.Config, eng *engine.Engine, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Server.RPCListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/", jsonrpc.NewServer(jsonrpc.NewAuctionHandler(eng)))
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok","service":"auctiond"}`))
		})

		httpServer := &http.Server{
			Addr:              cfg.Server.RPCListen,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g.Go(func() error {
			log.Info().Str("address", cfg.Server.RPCListen).Msg("json-rpc server listening")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	if cfg.Server.GRPCListen != "" {
		grpcCfg := grpcserver.DefaultServerConfig()
		grpcCfg.Address = cfg.Server.GRPCListen

		grpcSrv, err := grpcserver.NewServer(grpcCfg, eng,
			grpcserver.WithLogger(log.With().Str("component", "grpc").Logger()))
		if err != nil {
			return err
		}

		g.Go(grpcSrv.Start)
		g.Go(func() error {
			<-ctx.Done()
			grpcSrv.Stop()
			return nil
		})
	}

	if !quiet {
		fmt.Println("auctiond started, press Ctrl+C to stop")
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("auctiond stopped")
	return nil
}
