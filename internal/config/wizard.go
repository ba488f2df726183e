package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .eagleview.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to eagleview! Let's configure your dashboard.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Custom view (optional).
	viewPrompt := promptui.Prompt{
		Label:   "Linear custom view ID (leave blank to fetch by labels)",
		Default: "",
	}
	viewID, err := viewPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("view id: %w", err)
	}
	cfg.ViewID = strings.TrimSpace(viewID)

	// 2. Include labels.
	labelsPrompt := promptui.Prompt{
		Label:   "Labels to fetch (comma-separated)",
		Default: "",
	}
	labelsStr, err := labelsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	cfg.Labels = splitAndTrim(labelsStr)

	// 3. Exclusion label.
	excludePrompt := promptui.Prompt{
		Label:   "Exclusion label (issues carrying it are dropped, leave blank for none)",
		Default: "",
	}
	exclude, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclusion label: %w", err)
	}
	cfg.ExcludeLabel = strings.TrimSpace(exclude)

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for snapshots",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 5. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Dashboard server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("invalid port")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if os.Getenv(APIKeyEnvVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running eagleview fetch.\n", APIKeyEnvVar)
	}

	configPath := ".eagleview.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
