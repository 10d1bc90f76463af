package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/bionet/pkg/bionet"
)

var nodeColumns = []table.Column{
	{Title: "ID", Width: 6},
	{Title: "Name", Width: 24},
	{Title: "Type", Width: 12},
	{Title: "In", Width: 4},
	{Title: "Out", Width: 4},
	{Title: "Description", Width: 30},
}

var edgeColumns = []table.Column{
	{Title: "ID", Width: 6},
	{Title: "Source", Width: 20},
	{Title: "Dest", Width: 20},
	{Title: "Signs", Width: 20},
	{Title: "Link", Width: 20},
}

func nodeRows(net *bionet.BioNet) []table.Row {
	nodes := net.Nodes()
	rows := make([]table.Row, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, table.Row{
			strconv.FormatUint(n.ID, 10),
			n.Name,
			n.Type.String(),
			strconv.Itoa(len(n.InputLinks)),
			strconv.Itoa(len(n.OutputLinks)),
			n.Description,
		})
	}
	return rows
}

func edgeRows(net *bionet.BioNet) []table.Row {
	edges := net.Edges()
	rows := make([]table.Row, 0, len(edges))
	for _, e := range edges {
		src, _ := net.NodeName(e.Src)
		dest, _ := net.NodeName(e.Dest)
		rows = append(rows, table.Row{
			strconv.FormatUint(e.ID, 10),
			src,
			dest,
			fmt.Sprintf("(%s, %s)", e.Signs.Source, e.Signs.Dest),
			e.LinkType.String(),
		})
	}
	return rows
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("BioNet - " + m.net.Name()))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case overviewView:
		s.WriteString(m.renderOverview())
	case nodesView:
		s.WriteString(m.renderTable("Nodes", m.nodeTable))
	case edgesView:
		s.WriteString(m.renderTable("Edges", m.edgeTable))
	case queriesView:
		s.WriteString(m.renderQueries())
	case graphqlView:
		s.WriteString(m.renderGraphQL())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderTabs() string {
	rendered := make([]string, 0, len(tabNames))
	for i, tab := range tabNames {
		if view(i) == m.currentView {
			rendered = append(rendered, activeTabStyle.Render(tab))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) renderOverview() string {
	interactions := 0
	for _, n := range m.net.Nodes() {
		if n.IsInteraction() {
			interactions++
		}
	}

	stats := fmt.Sprintf(`Network
───────────────
File:          %s
Nodes:         %d
  entities:    %d
  interactions:%d
Edges:         %d`,
		m.path,
		m.net.NodeCount(),
		m.net.NodeCount()-interactions,
		interactions,
		m.net.EdgeCount(),
	)

	var params strings.Builder
	params.WriteString("Parameters\n───────────────")
	list := m.net.Parameters()
	if len(list) == 0 {
		params.WriteString("\n(none)")
	}
	for _, p := range list {
		fmt.Fprintf(&params, "\n%-12s %g", p.Name, p.Value)
	}

	return contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(stats),
		statsBoxStyle.Render(params.String()),
	))
}

func (m model) renderTable(title string, t table.Model) string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(title))
	s.WriteString("\n\n")
	s.WriteString(t.View())
	return contentStyle.Render(s.String())
}

func (m model) renderQueries() string {
	result := m.result
	if result == "" {
		result = "Select a query and press enter"
	}
	return contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		m.queryList.View(),
		resultBoxStyle.Render(result),
	))
}

func (m model) renderGraphQL() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("GraphQL Console"))
	s.WriteString("\n\n")
	s.WriteString(m.queryInput.View())
	if m.result != "" {
		s.WriteString("\n\n")
		s.WriteString(resultBoxStyle.Render(m.result))
	}
	return contentStyle.Render(s.String())
}
