package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// Wizard answers the init prompts. The terminal implementation is
// promptWizard; tests substitute canned answers.
type Wizard interface {
	Prompt(label, def string, validate func(string) error) (string, error)
	Select(label string, items []string) (int, error)
}

type promptWizard struct{}

func (promptWizard) Prompt(label, def string, validate func(string) error) (string, error) {
	p := promptui.Prompt{Label: label, Default: def, Validate: validate}
	return p.Run()
}

func (promptWizard) Select(label string, items []string) (int, error) {
	s := promptui.Select{Label: label, Items: items}
	idx, _, err := s.Run()
	return idx, err
}

// TerminalWizard returns the interactive promptui wizard.
func TerminalWizard() Wizard { return promptWizard{} }

// WizardResult is what RunWizard produced.
type WizardResult struct {
	Config *Config
	// WriteContent asks the caller to write a starter content file.
	WriteContent bool
}

// RunWizard asks for the serve and export settings, saves them to path and
// returns the resulting Config.
func RunWizard(w Wizard, path string) (*WizardResult, error) {
	fmt.Println("Welcome to levelup! Let's configure the site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portStr, err := w.Prompt("HTTP port", strconv.Itoa(cfg.Port), validatePort)
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Content file.
	contentFile, err := w.Prompt("Content file (YAML)", cfg.ContentFile, nil)
	if err != nil {
		return nil, fmt.Errorf("content file: %w", err)
	}
	cfg.ContentFile = contentFile

	// 3. Export directory.
	outputDir, err := w.Prompt("Output directory for the static export", cfg.OutputDir, nonEmpty)
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 4. Assets directory.
	assetsDir, err := w.Prompt("Static assets directory", cfg.Assets.Dir, nil)
	if err != nil {
		return nil, fmt.Errorf("assets dir: %w", err)
	}
	cfg.Assets.Dir = assetsDir

	// 5. Reload content on change while serving.
	watchIdx, err := w.Select("Reload content when the file changes", []string{
		"yes: watch the content file while serving",
		"no:  load content once at startup",
	})
	if err != nil {
		return nil, fmt.Errorf("watch selection: %w", err)
	}
	cfg.WatchContent = watchIdx == 0

	// 6. Starter content.
	writeContent := false
	if _, statErr := os.Stat(cfg.ContentFile); os.IsNotExist(statErr) && cfg.ContentFile != "" {
		idx, err := w.Select("Write a starter content file", []string{"yes", "no"})
		if err != nil {
			return nil, fmt.Errorf("starter content selection: %w", err)
		}
		writeContent = idx == 0
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return &WizardResult{Config: cfg, WriteContent: writeContent}, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 0 || n > 65535 {
		return fmt.Errorf("port must be between 0 and 65535")
	}
	return nil
}

func nonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}
