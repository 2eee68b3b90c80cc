package cli

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-projectpage/internal/models"
)

type RenderCommand struct {
	app *app
}

func NewRenderCommand(a *app) *cobra.Command {
	cmd := &RenderCommand{app: a}

	cobraCmd := &cobra.Command{
		Use:   "render <project>",
		Short: "Render the page of one project",
		Long: `Fetch the README of a project and render its page once.

The page is written to stdout unless --out is given. A project whose README
cannot be fetched still gets a page; use --strict to fail instead.`,
		Example: `  # Print the page of cgpPindel
  projectpage render cgpPindel

  # Write it to disk
  projectpage render cgpPindel --out site/cgpPindel/index.html`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	cobraCmd.Flags().Bool("strict", false, "fail when no README could be fetched")

	return cobraCmd
}

func (c *RenderCommand) Run(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	strict, _ := cmd.Flags().GetBool("strict")
	cfg := c.app.cfg

	project, err := models.ProjectFromPath(cfg.Org, cfg.Ref, args[0])
	if err != nil {
		return err
	}

	builder, err := c.app.newBuilder()
	if err != nil {
		return fmt.Errorf("failed to set up page builder: %w", err)
	}

	built, err := builder.Build(cmd.Context(), project)
	if err != nil {
		return err
	}
	if built.FetchErr != nil {
		if strict {
			return built.FetchErr
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", WarnStyle.Render("!"), built.FetchErr)
	}

	var buf bytes.Buffer
	if err := built.Document.Render(&buf); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	if out == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := c.app.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := c.app.fs.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Rendered %s (readme: %s) to %s\n", SuccessStyle.Render("✓"), project.Name, built.Source, out)
	return nil
}
