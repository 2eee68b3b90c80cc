package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakoblorz/go-projectpage/internal/models"
)

func NewLinksCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "links <project>",
		Short: "Print the URLs derived for a project",
		Example: `  projectpage links cgpPindel
  projectpage links /cgpPindel/index.html --ref develop`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg

			project, err := models.ProjectFromPath(cfg.Org, cfg.Ref, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, TitleStyle.Render(project.FullName()))
			for _, l := range []struct {
				label string
				url   string
			}{
				{"repository", project.RepositoryURL()},
				{"zip", project.ZipURL()},
				{"tar", project.TarURL()},
				{"readme api", project.APIReadmeURL(cfg.APIBaseURL)},
				{"readme raw", project.RawReadmeURL()},
				{"readme proxy", project.ProxiedRawReadmeURL(cfg.ProxyBase)},
			} {
				fmt.Fprintf(w, "%s %s\n", LabelStyle.Render(l.label), l.url)
			}
			return nil
		},
	}
}
