// Command keepsake-preview plays an invitation's choreography in the
// terminal. Configuration comes from KEEPSAKE_* environment variables.
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/keepsake"
	"github.com/phanxgames/keepsake/content"
	"github.com/phanxgames/keepsake/internal/config"
	"github.com/phanxgames/keepsake/internal/preview"
)

func main() {
	cfg, err := config.LoadPreview()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	inv, err := loadInvitation(cfg.Invitation)
	if err != nil {
		log.Fatalf("invitation: %v", err)
	}

	theme := keepsake.DefaultTheme()
	name := cfg.Theme
	if name == "" {
		name = inv.Theme
	}
	if name != "" {
		theme, err = keepsake.BuiltinTheme(name)
		if err != nil {
			log.Fatalf("theme: %v", err)
		}
	}

	var runner *keepsake.ScriptRunner
	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			log.Fatalf("script: %v", err)
		}
		if runner, err = keepsake.LoadScript(data); err != nil {
			log.Fatalf("script: %v", err)
		}
	}

	p := tea.NewProgram(preview.New(inv, preview.Options{
		Theme:         theme,
		ReducedMotion: cfg.ReducedMotion,
		Tick:          cfg.Tick,
		Debug:         cfg.Debug,
		Script:        runner,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func loadInvitation(path string) (*content.Invitation, error) {
	if path == "" {
		return content.Sample()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return content.Load(data)
}
