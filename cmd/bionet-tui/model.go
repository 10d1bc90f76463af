package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	gql "github.com/graphql-go/graphql"

	"github.com/dd0wney/bionet/pkg/bionet"
	"github.com/dd0wney/bionet/pkg/graphql"
)

type view int

const (
	overviewView view = iota
	nodesView
	edgesView
	queriesView
	graphqlView
	viewCount
)

var tabNames = [viewCount]string{"Overview", "Nodes", "Edges", "Queries", "GraphQL"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Up, k.Down},
		{k.Quit},
	}
}

// queryItem is one entry of the query list
type queryItem struct {
	title string
	desc  string
	run   func() []uint64
}

func (q queryItem) Title() string       { return q.title }
func (q queryItem) Description() string { return q.desc }
func (q queryItem) FilterValue() string { return q.title }

type model struct {
	net         *bionet.BioNet
	path        string
	schema      gql.Schema
	currentView view
	nodeTable   table.Model
	edgeTable   table.Model
	queryList   list.Model
	queryInput  textinput.Model
	result      string
	help        help.Model
	keys        keyMap
	width       int
	height      int
	message     string
	messageErr  bool
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())
	return t
}

func initialModel(net *bionet.BioNet, path string) (model, error) {
	schema, err := graphql.GenerateSchema(net)
	if err != nil {
		return model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "{ nodesWithPositiveInputLink { name } }"
	ti.CharLimit = 500
	ti.Width = 70

	items := []list.Item{
		queryItem{"With positive input", "entities with a destination-positive input link", net.NodesWithPositiveInputLink},
		queryItem{"With negative input", "entities with a destination-negative input link", net.NodesWithNegativeInputLink},
		queryItem{"Without positive input", "entities with no destination-positive input link", net.NodesWithoutPositiveInputLink},
		queryItem{"Without negative input", "entities with no destination-negative input link", net.NodesWithoutNegativeInputLink},
		queryItem{"Without outputs", "entities with no output links", net.NodesWithoutOutputLinks},
		queryItem{"Least inputs", "entities of minimum in-degree", net.NodesWithLeastNumberOfInputs},
		queryItem{"Least outputs", "entities of minimum out-degree", net.NodesWithLeastNumberOfOutputs},
	}
	ql := list.New(items, list.NewDefaultDelegate(), 50, 20)
	ql.Title = "Queries"
	ql.SetShowHelp(false)
	ql.SetFilteringEnabled(false)

	return model{
		net:         net,
		path:        path,
		schema:      schema,
		currentView: overviewView,
		nodeTable:   newTable(nodeColumns, nodeRows(net)),
		edgeTable:   newTable(edgeColumns, edgeRows(net)),
		queryList:   ql,
		queryInput:  ti,
		help:        help.New(),
		keys:        keys,
	}, nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) setView(v view) {
	m.currentView = (v + viewCount) % viewCount
	if m.currentView == graphqlView {
		m.queryInput.Focus()
	} else {
		m.queryInput.Blur()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.queryList.SetSize(msg.Width/2, max(msg.Height-12, 5))

	case tea.KeyMsg:
		// q types into the GraphQL prompt; ctrl+c always quits
		typing := m.currentView == graphqlView && msg.String() == "q"
		switch {
		case key.Matches(msg, m.keys.Quit) && !typing:
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.setView(m.currentView + 1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.setView(m.currentView - 1)
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			switch m.currentView {
			case queriesView:
				m.runSelectedQuery()
			case graphqlView:
				m.executeGraphQL()
			}
			return m, nil
		}
	}

	switch m.currentView {
	case nodesView:
		m.nodeTable, cmd = m.nodeTable.Update(msg)
	case edgesView:
		m.edgeTable, cmd = m.edgeTable.Update(msg)
	case queriesView:
		m.queryList, cmd = m.queryList.Update(msg)
	case graphqlView:
		m.queryInput, cmd = m.queryInput.Update(msg)
	}
	return m, cmd
}

func (m *model) runSelectedQuery() {
	item, ok := m.queryList.SelectedItem().(queryItem)
	if !ok {
		return
	}
	start := time.Now()
	ids := item.run()
	names := m.net.NodeNames(ids)
	if len(names) == 0 {
		m.result = "(no nodes)"
	} else {
		m.result = strings.Join(names, "\n")
	}
	m.message = fmt.Sprintf("%s: %d node(s) in %s", item.title, len(ids), time.Since(start).Round(time.Microsecond))
	m.messageErr = false
}

func (m *model) executeGraphQL() {
	query := strings.TrimSpace(m.queryInput.Value())
	if query == "" {
		m.message = "Query cannot be empty"
		m.messageErr = true
		return
	}

	result := graphql.ExecuteQuery(query, m.schema)
	if result.HasErrors() {
		m.message = fmt.Sprintf("Query error: %s", result.Errors[0].Message)
		m.messageErr = true
		return
	}
	out, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		m.message = fmt.Sprintf("Encoding error: %v", err)
		m.messageErr = true
		return
	}
	m.result = string(out)
	m.message = "Query executed"
	m.messageErr = false
}
