package cmd

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/CristiGvl/picoMaint/api"
	"github.com/CristiGvl/picoMaint/internal/config"
	"github.com/spf13/cobra"
)

var (
	serveBind string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  "Serve mounts, folder reports, temperatures and cleanup over a JSON HTTP API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("bind") {
			cfg.Server.Bind = serveBind
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		server, err := api.NewServer(cfg, appVersion)
		if err != nil {
			return err
		}

		// Handle graceful shutdown
		go func() {
			<-cmd.Context().Done()
			if err := server.Shutdown(); err != nil {
				slog.Error("Error during shutdown", "err", err)
			}
		}()

		addr := net.JoinHostPort(cfg.Server.Bind, cfg.Server.Port)
		fmt.Fprintf(cmd.ErrOrStderr(), "Starting %s server on %s\n", config.AppName, addr)
		return server.Start(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveBind, "bind", "", "IP address to bind the server to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to run the server on (default from config)")
}
