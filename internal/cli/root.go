package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-projectpage/internal/filesystem"
	"github.com/jakoblorz/go-projectpage/internal/github"
	"github.com/jakoblorz/go-projectpage/internal/proxy"
)

// NewRootCommand creates the root command. A nil ghClient or rawFetcher is
// replaced by the real implementation built from configuration.
func NewRootCommand(fs filesystem.FileSystem, ghClient github.ReadmeClient, rawFetcher proxy.RawFetcher) *cobra.Command {
	a := &app{fs: fs, ghClient: ghClient, raw: rawFetcher}

	rootCmd := &cobra.Command{
		Use:   "projectpage",
		Short: "Serve README landing pages for GitHub projects",
		Long: `Serve a landing page for every repository of a GitHub organization.

The project is taken from the first segment of the request path. Its README
is fetched from the GitHub API, or through a CORS proxy when the API fails,
and placed into the page template together with download links.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to config file (yaml|toml)")
	rootCmd.PersistentFlags().String("org", "", "GitHub organization (default \"cancerit\")")
	rootCmd.PersistentFlags().String("ref", "", "branch for READMEs and archives (default \"master\")")
	rootCmd.PersistentFlags().String("proxy", "", "CORS proxy prefix for the raw README fallback")
	rootCmd.PersistentFlags().String("template", "", "page template (default: built-in page)")

	rootCmd.AddCommand(NewServeCommand(a))
	rootCmd.AddCommand(NewRenderCommand(a))
	rootCmd.AddCommand(NewLinksCommand(a))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(fs, nil, nil)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
