package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rshade/tdsdose/internal/config"
	"github.com/rshade/tdsdose/internal/logging"
	"github.com/rshade/tdsdose/internal/server"
)

// NewServeCmd creates the "serve" command, which serves the web form and the
// JSON API until interrupted.
func NewServeCmd() *cobra.Command {
	var (
		addr    string
		variant string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dosing form over HTTP",
		Long: `Serve the dosing form over HTTP.

GET / renders the form and POST / submits it. The JSON API lives under
/api/v1: POST /api/v1/dosing/calculate, GET /api/v1/dosing/fields and
GET /api/v1/app. When app.web_dir exists it is served under /assets.`,
		Example: `  # Serve on the configured address (default :8080)
  tdsdose serve

  # Serve the basic form on another port
  tdsdose serve --addr 127.0.0.1:9000 --variant basic`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeServe(cmd, addr, variant)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from configuration)")
	cmd.Flags().StringVar(&variant, "variant", "", "form variant: basic or chemical (default from configuration)")

	return cmd
}

func executeServe(cmd *cobra.Command, addr, variantFlag string) error {
	cfg := config.GetGlobalConfig()
	variant, err := resolveVariant(variantFlag, cfg)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}
	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(server.Options{
		Variant:  variant,
		Defaults: cfg.Form.Defaults,
		App:      cfg.App,
		Logger:   logging.ComponentLogger(*logging.FromContext(ctx), "server"),
	})
	if err != nil {
		return err
	}

	return srv.Run(ctx, addr)
}
