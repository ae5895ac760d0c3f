package cmd

import (
	"github.com/spf13/cobra"

	"kvcrud/api"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the record store over HTTP",
		Long: `kvcrud serve command.

The serve command exposes the store under /records:
- POST /records saves a record
- GET /records?page=&size=&sort= lists one page, offset= starts it at an item
- GET, PUT and DELETE /records/{id} work on a single record
- GET /stats reports the record count`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("address") {
				cfg.Server.Address, _ = cmd.Flags().GetString("address")
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("seed") {
				cfg.Store.Seed, _ = cmd.Flags().GetString("seed")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			s, closeFn, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore(closeFn, &err)

			log.Info("store opened", "backend", cfg.Store.Backend, "path", cfg.Store.Path)

			a := api.New(cfg.Server.Address, cfg.Server.Port, s, log)
			return a.Start()
		},
	}

	serveCmd.Flags().StringP("address", "H", "localhost", "Hostname or IP address")
	serveCmd.Flags().IntP("port", "p", 5555, "Port on which to listen")
	serveCmd.Flags().String("seed", "", "JSON file of records loaded into the memory backend")

	return serveCmd
}
