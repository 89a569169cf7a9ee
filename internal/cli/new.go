package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/uniwebcms/uniweb-cli/internal/scaffold"
	"github.com/uniwebcms/uniweb-cli/internal/template/resolver"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <directory>",
	Short: "Create a project from a template",
	Long: `Create a new Uniweb project in the given directory.

The template is resolved from the identifier passed with --template:
a built-in name, an official template name, an npm package, a GitHub
repository, or a local directory.

Examples:
  uniweb new my-site
  uniweb new my-site --template marketing
  uniweb new my-site --template @uniweb/template-blog
  uniweb new my-site --template github:acme/site-template#v2
  uniweb new my-site --template ./local-template --var tagline="Ship faster"`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

// New command flags
var (
	newTemplate string
	newName     string
	newTag      string
	newForce    bool
	newYes      bool
	newVerbose  bool
	newSkip     []string
	newVars     []string
	newPins     []string
)

func init() {
	// Flags for new
	newCmd.Flags().StringVarP(&newTemplate, FlagTemplate, "t", "starter", DescTemplate)
	newCmd.Flags().StringVar(&newName, FlagName, "", DescName)
	newCmd.Flags().StringVar(&newTag, FlagTag, "", DescTag)
	newCmd.Flags().BoolVarP(&newForce, FlagForce, "f", false, DescForce)
	newCmd.Flags().BoolVarP(&newYes, FlagYes, "y", false, DescYes)
	newCmd.Flags().BoolVarP(&newVerbose, FlagVerbose, "v", false, DescVerbose)
	newCmd.Flags().StringArrayVar(&newSkip, FlagSkip, nil, DescSkip)
	newCmd.Flags().StringArrayVar(&newVars, FlagVar, nil, DescVar)
	newCmd.Flags().StringArrayVar(&newPins, FlagPin, nil, DescPin)
}

func runNew(cmd *cobra.Command, args []string) error {
	targetDir := args[0]

	if err := checkTargetDir(targetDir, newForce); err != nil {
		return err
	}

	varPairs, err := parsePairs(FlagVar, newVars)
	if err != nil {
		return err
	}
	pins, err := parsePairs(FlagPin, newPins)
	if err != nil {
		return err
	}

	name := newName
	if name == "" {
		name = defaultProjectName(targetDir)
		if !newYes {
			name, err = promptProjectName(name)
			if err != nil {
				return err
			}
		}
	}

	vars := make(map[string]interface{}, len(varPairs)+1)
	for k, v := range varPairs {
		vars[k] = v
	}
	vars["name"] = name

	printInfo(fmt.Sprintf("Creating project %q in %s", name, targetDir))
	printInfo(fmt.Sprintf("Template: %s", newTemplate))

	r := resolver.New(Version, getGitHubToken(), scaffold.New())

	resolved, err := r.Resolve(cmd.Context(), newTemplate, resolver.Options{
		Tag:        newTag,
		OnProgress: printProgress,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Could not resolve template %s: %v", newTemplate, err))
		return err
	}

	applyOpts := resolver.ApplyOptions{
		Versions:  pins,
		Skip:      newSkip,
		OnWarning: printWarning,
	}
	if newVerbose {
		applyOpts.OnProgress = printDetail
	}

	m, err := r.ApplyExternal(cmd.Context(), resolved, targetDir, vars, applyOpts)
	if err != nil {
		printErrorMsg(fmt.Sprintf("Could not apply template %s: %v", newTemplate, err))
		return err
	}

	printSuccess(fmt.Sprintf("Project created from template %q", m.Name))
	if resolved.Version != "" {
		printDetail(fmt.Sprintf("template version: %s", resolved.Version))
	}
	printInfo("")
	printInfo("Next steps:")
	printInfo(fmt.Sprintf("  cd %s", targetDir))
	printInfo("  npm install")
	printInfo("  uniweb dev")

	return nil
}

// checkTargetDir refuses to apply into a non-empty directory unless force
// is set. A missing directory is fine; the copy creates it.
func checkTargetDir(targetDir string, force bool) error {
	entries, err := os.ReadDir(targetDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read target directory %s: %w", targetDir, err)
	}
	if len(entries) > 0 && !force {
		return fmt.Errorf("target directory %s is not empty (use --force to apply anyway)", targetDir)
	}
	return nil
}

// defaultProjectName derives a project name from the target directory.
func defaultProjectName(targetDir string) string {
	abs, err := filepath.Abs(targetDir)
	if err != nil {
		return filepath.Base(targetDir)
	}
	return filepath.Base(abs)
}
