package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagTemplate = "template"
	FlagName     = "name"
	FlagTag      = "tag"
	FlagForce    = "force"
	FlagSkip     = "skip"
	FlagVar      = "var"
	FlagPin      = "pin"
	FlagYes      = "yes"
	FlagVerbose  = "verbose"
	FlagNoColor  = "no-color"
	FlagQuiet    = "quiet"
	FlagDebug    = "debug"

	// Flag descriptions
	DescTemplate = "Template identifier (builtin name, official name, npm package, github:owner/repo[#ref], URL, or local path)"
	DescName     = "Project name (defaults to the target directory name)"
	DescTag      = "Pin an official template to a specific release tag"
	DescForce    = "Apply into a non-empty directory"
	DescSkip     = "Output file name to exclude from the copy (repeatable)"
	DescVar      = "Template variable as key=value (repeatable)"
	DescPin      = "Pin a package version as package=spec (repeatable)"
	DescYes      = "Skip interactive prompts and accept defaults"
	DescVerbose  = "Show every file as it is written"
	DescNoColor  = "Disable colored output"
	DescQuiet    = "Suppress non-error output"
	DescDebug    = "Enable debug logging"
)

// parsePairs parses repeated key=value flag values into a map.
func parsePairs(flag string, pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --%s value %q, expected key=value", flag, pair)
		}
		out[key] = value
	}
	return out, nil
}

// getGitHubToken retrieves GitHub token from environment or gh CLI.
// Priority: GITHUB_TOKEN env > GH_TOKEN env > gh auth token command
func getGitHubToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}

	// Try gh CLI auth token (uses gh's secure credential storage)
	if _, err := exec.LookPath("gh"); err == nil {
		cmd := exec.Command("gh", "auth", "token")
		output, err := cmd.Output()
		if err == nil {
			token := strings.TrimSpace(string(output))
			if token != "" {
				return token
			}
		}
	}

	return ""
}
