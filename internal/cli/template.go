package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/uniwebcms/uniweb-cli/internal/scaffold"
	"github.com/uniwebcms/uniweb-cli/internal/template/fetch"
	"github.com/uniwebcms/uniweb-cli/internal/template/model"
)

// templateCmd represents the template command
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Inspect available templates",
}

// templateListCmd represents the template list command
var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and official templates",
	Long: `List the templates this tool can resolve by bare name.

Examples:
  uniweb template list
  uniweb template list --remote`,
	RunE: runTemplateList,
}

// Template list flags
var templateListRemote bool

func init() {
	templateListCmd.Flags().BoolVar(&templateListRemote, "remote", false,
		"Query the latest official release for template descriptions")

	templateCmd.AddCommand(templateListCmd)
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	printInfo("Built-in templates (bundled with this binary):")
	for _, name := range scaffold.New().Names() {
		printInfo(fmt.Sprintf("  %s", name))
	}

	printInfo("")
	printInfo(fmt.Sprintf("Official templates (%s/%s releases):",
		model.OfficialTemplatesOwner, model.OfficialTemplatesRepo))

	if !templateListRemote {
		for _, name := range model.OfficialTemplates {
			printInfo(fmt.Sprintf("  %s", name))
		}
		printInfo("")
		printInfo("Run with --remote to fetch descriptions from the latest release.")
		return nil
	}

	releases := fetch.NewReleaseFetcher(getGitHubToken())
	manifest, err := releases.Manifest(cmd.Context(), "")
	if err != nil {
		printErrorMsg(fmt.Sprintf("Could not fetch the release manifest: %v", err))
		return err
	}

	names := make([]string, 0, len(manifest.Templates))
	for name := range manifest.Templates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		desc, _ := manifest.Templates[name]["description"].(string)
		if desc != "" {
			printInfo(fmt.Sprintf("  %-12s %s", name, desc))
		} else {
			printInfo(fmt.Sprintf("  %s", name))
		}
	}
	printDetail(fmt.Sprintf("release: %s", manifest.Tag))

	return nil
}
