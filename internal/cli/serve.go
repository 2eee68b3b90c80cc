package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-projectpage/internal/server"
)

type ServeCommand struct {
	app *app
}

func NewServeCommand(a *app) *cobra.Command {
	cmd := &ServeCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the project page HTTP server",
		Long: `Run the HTTP server. GET /<project>/ returns the page of <project>.

Stops gracefully on SIGINT or SIGTERM.`,
		Example: `  # Serve cancerit projects on :8080
  projectpage serve

  # Another organization and address
  projectpage serve --org wtsi --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("addr", "", "listen address (default from http_addr, \":8080\")")

	return cobraCmd
}

func (c *ServeCommand) Run(cmd *cobra.Command, args []string) error {
	cfg := c.app.cfg
	addr := cfg.HTTPAddr
	if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
		addr = flagAddr
	}

	builder, err := c.app.newBuilder()
	if err != nil {
		return fmt.Errorf("failed to set up page builder: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(builder, cfg.Org, cfg.Ref, log.Default())
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", TitleStyle.Render("projectpage"), SubtleStyle.Render(fmt.Sprintf("org=%s ref=%s addr=%s", cfg.Org, cfg.Ref, addr)))
	return srv.ListenAndServe(ctx, addr)
}
