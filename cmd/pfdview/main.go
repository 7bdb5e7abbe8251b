// Command pfdview is a terminal browser over one validated problem.
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/WSU-HELPLAB/CHEMPROV-sub000/pkg/config"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: pfdview FILE")
		os.Exit(2)
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	m, err := initialModel(os.Args[1], cfg)
	if err != nil {
		log.Fatalf("Failed to open problem: %v", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
