package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/bionet/pkg/bionet"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: bionet-tui <network file>")
		os.Exit(2)
	}
	path := os.Args[1]

	net, err := bionet.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load network: %v\n", err)
		os.Exit(1)
	}

	m, err := initialModel(net, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build query schema: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
