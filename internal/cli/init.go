package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auctionlaunch/auctiond/internal/config"
	"github.com/auctionlaunch/auctiond/internal/storage/auctionstore"
	"github.com/auctionlaunch/auctiond/internal/storage/compression"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize configuration and genesis state",
	Long: `Write an example auctiond.toml to the given path (default: current
directory) unless one already exists, then write the genesis params from
that configuration into the store. Re-running against an initialized
store is a no-op.

Edit the genesis section before running the server; the admin address in
particular must be set to a real identity.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFile
		if configFile != "" {
			path = configFile
		}
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.WriteExample(path); err != nil {
				return err
			}
			if !quiet {
				fmt.Printf("Wrote example configuration to %s\n", path)
			}
		}

		cfg, err := config.Load(path)
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
		store := auctionstore.New(db, auctionstore.WithCompressor(comp))

		params, err := cfg.Genesis.Params()
		if err != nil {
			return err
		}
		err = store.InitGenesis(cmd.Context(), params)
		switch {
		case err == nil:
			log.Info().Str("admin", params.Admin).Msg("genesis params written")
		case errors.Is(err, auctionstore.ErrAlreadyInitialized):
			if !quiet {
				fmt.Println("Store already initialized, nothing to do")
			}
		default:
			return fmt.Errorf("initialize genesis: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
