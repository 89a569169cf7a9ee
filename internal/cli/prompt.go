package cli

import (
	"fmt"
	"regexp"

	"github.com/AlecAivazis/survey/v2"
)

// projectNamePattern accepts npm-style package names, scoped or not.
var projectNamePattern = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

// promptProjectName interactively asks for the project name, offering
// defaultName as the default.
func promptProjectName(defaultName string) (string, error) {
	var result string

	prompt := &survey.Input{
		Message: "Project name",
		Default: defaultName,
		Help:    "Used as the npm package name and substituted into the template",
	}

	validator := func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", val)
		}
		if str == "" {
			return fmt.Errorf("project name is required")
		}
		if !projectNamePattern.MatchString(str) {
			return fmt.Errorf("must be a valid package name (lowercase, digits, - . _)")
		}
		return nil
	}

	if err := survey.AskOne(prompt, &result, survey.WithValidator(validator)); err != nil {
		return "", err
	}

	return result, nil
}
