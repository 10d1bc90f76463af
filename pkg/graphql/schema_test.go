package graphql

import (
	"testing"

	"github.com/dd0wney/bionet/pkg/bionet"
)

// setupNet builds A -> B (+), C -> B (-) plus an interaction X,Y -> I -> Z
func setupNet(t *testing.T) *bionet.BioNet {
	t.Helper()
	net := bionet.New("graphql")
	for _, name := range []string{"A", "B", "C", "X", "Y", "Z"} {
		if _, err := net.CreateNode(name); err != nil {
			t.Fatalf("CreateNode(%s) error = %v", name, err)
		}
	}
	edges := []struct {
		src, dest string
		signs     bionet.Signs
	}{
		{"A", "B", bionet.SignPair(bionet.None, bionet.Positive)},
		{"C", "B", bionet.SignPair(bionet.None, bionet.Negative)},
	}
	for _, e := range edges {
		if _, err := net.CreateEdgeByName(e.src, e.dest, e.signs); err != nil {
			t.Fatalf("CreateEdgeByName(%s, %s) error = %v", e.src, e.dest, err)
		}
	}
	x, _ := net.NodeByName("X")
	y, _ := net.NodeByName("Y")
	z, _ := net.NodeByName("Z")
	if _, err := net.CreatePositiveInteraction("I", x, y, z); err != nil {
		t.Fatalf("CreatePositiveInteraction() error = %v", err)
	}
	if err := net.AddParameter("k1", 0.05); err != nil {
		t.Fatalf("AddParameter() error = %v", err)
	}
	return net
}

func mustSchema(t *testing.T, net *bionet.BioNet) *Harness {
	t.Helper()
	schema, err := GenerateSchema(net)
	if err != nil {
		t.Fatalf("GenerateSchema() error = %v", err)
	}
	return &Harness{t: t, schema: schema}
}

func names(t *testing.T, v any) []string {
	t.Helper()
	list, ok := v.([]any)
	if !ok {
		t.Fatalf("expected list, got %T", v)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.(map[string]any)["name"].(string))
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGenerateSchema_Network(t *testing.T) {
	h := mustSchema(t, setupNet(t))
	data := h.run(`{ network { name nodeCount edgeCount } }`, nil)

	network := data["network"].(map[string]any)
	if network["name"] != "graphql" {
		t.Errorf("name = %v, want graphql", network["name"])
	}
	if network["nodeCount"] != 7 {
		t.Errorf("nodeCount = %v, want 7", network["nodeCount"])
	}
	if network["edgeCount"] != 5 {
		t.Errorf("edgeCount = %v, want 5", network["edgeCount"])
	}
}

func TestQueryFields(t *testing.T) {
	h := mustSchema(t, setupNet(t))

	tests := []struct {
		field string
		want  []string
	}{
		{"nodesWithPositiveInputLink", []string{"B", "Z"}},
		{"nodesWithNegativeInputLink", []string{"B"}},
		{"nodesWithoutPositiveInputLink", []string{"A", "C", "X", "Y"}},
		{"nodesWithoutNegativeInputLink", []string{"A", "C", "X", "Y", "Z"}},
		{"nodesWithoutOutputLinks", []string{"B", "Z"}},
		{"nodesWithLeastInputs", []string{"A", "C", "X", "Y"}},
		{"nodesWithLeastOutputs", []string{"B", "Z"}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			data := h.run(`{ `+tt.field+` { name } }`, nil)
			if got := names(t, data[tt.field]); !equalStrings(got, tt.want) {
				t.Errorf("%s = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestNodeByName_Links(t *testing.T) {
	h := mustSchema(t, setupNet(t))
	data := h.run(`{
		nodeByName(name: "B") {
			name
			type
			inputs { name }
			inputLinks { sourceSign destSign linkType src { name } dest { name } }
		}
	}`, nil)

	node := data["nodeByName"].(map[string]any)
	if node["type"] != "Default" {
		t.Errorf("type = %v, want Default", node["type"])
	}
	if got := names(t, node["inputs"]); !equalStrings(got, []string{"A", "C"}) {
		t.Errorf("inputs = %v, want [A C]", got)
	}
	links := node["inputLinks"].([]any)
	if len(links) != 2 {
		t.Fatalf("inputLinks has %d entries, want 2", len(links))
	}
	second := links[1].(map[string]any)
	if second["destSign"] != "Negative" || second["sourceSign"] != "None" || second["linkType"] != "None" {
		t.Errorf("unexpected second link %v", second)
	}
	if second["src"].(map[string]any)["name"] != "C" {
		t.Errorf("second link source = %v, want C", second["src"])
	}
}

func TestNode_ByIDAndMissing(t *testing.T) {
	net := setupNet(t)
	h := mustSchema(t, net)
	b, _ := net.NodeByName("B")

	data := h.run(`query($id: ID!) { node(id: $id) { id name } }`, map[string]any{"id": formatID(b.ID)})
	node := data["node"].(map[string]any)
	if node["name"] != "B" || node["id"] != formatID(b.ID) {
		t.Errorf("node = %v", node)
	}

	data = h.run(`{ node(id: "999") { name } nodeByName(name: "nobody") { name } }`, nil)
	if data["node"] != nil || data["nodeByName"] != nil {
		t.Errorf("missing nodes should resolve to null, got %v", data)
	}

	result := ExecuteQuery(`{ node(id: "abc") { name } }`, h.schema)
	if !result.HasErrors() {
		t.Error("expected error for non-numeric id")
	}
}

func TestNodes_FilterByType(t *testing.T) {
	h := mustSchema(t, setupNet(t))
	data := h.run(`{ nodes(type: Interaction) { name outputs { name } } }`, nil)

	if got := names(t, data["nodes"]); !equalStrings(got, []string{"I"}) {
		t.Fatalf("interaction nodes = %v, want [I]", got)
	}
	hub := data["nodes"].([]any)[0].(map[string]any)
	if got := names(t, hub["outputs"]); !equalStrings(got, []string{"Z"}) {
		t.Errorf("I outputs = %v, want [Z]", got)
	}

	data = h.run(`{ nodes { name } edges { id } parameters { name value } }`, nil)
	if len(data["nodes"].([]any)) != 7 || len(data["edges"].([]any)) != 5 {
		t.Errorf("unexpected totals %v", data)
	}
	param := data["parameters"].([]any)[0].(map[string]any)
	if param["name"] != "k1" || param["value"] != 0.05 {
		t.Errorf("parameter = %v", param)
	}
}

func TestEdge_Reaction(t *testing.T) {
	net := bionet.New("reactions")
	a, _ := net.CreateNode("A")
	b, _ := net.CreateNode("B")
	e, err := net.CreateEdge(a.ID, b.ID, bionet.SignPair(bionet.Negative, bionet.Positive),
		bionet.WithLinkType(bionet.Production),
		bionet.WithReaction(bionet.Reaction{Expression: "A -> B", Rate: 0.5, Parameters: []string{"k1"}}))
	if err != nil {
		t.Fatalf("CreateEdge() error = %v", err)
	}
	plain, _ := net.CreateEdge(b.ID, a.ID, bionet.SignPair(bionet.None, bionet.None))

	h := mustSchema(t, net)
	data := h.run(`query($a: ID!, $b: ID!) {
		a: edge(id: $a) { linkType sourceSign reaction { expression rate parameters } }
		b: edge(id: $b) { reaction { expression } }
	}`, map[string]any{"a": formatID(e.ID), "b": formatID(plain.ID)})

	first := data["a"].(map[string]any)
	if first["linkType"] != "Production" || first["sourceSign"] != "Negative" {
		t.Errorf("edge a = %v", first)
	}
	reaction := first["reaction"].(map[string]any)
	if reaction["expression"] != "A -> B" || reaction["rate"] != 0.5 {
		t.Errorf("reaction = %v", reaction)
	}
	if data["b"].(map[string]any)["reaction"] != nil {
		t.Errorf("edge without reaction should resolve null")
	}
}

func TestSchema_SeesLaterConstruction(t *testing.T) {
	net := bionet.New("live")
	h := mustSchema(t, net)
	if got := names(t, h.run(`{ nodesWithoutOutputLinks { name } }`, nil)["nodesWithoutOutputLinks"]); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if _, err := net.CreateNode("late"); err != nil {
		t.Fatal(err)
	}
	if got := names(t, h.run(`{ nodesWithoutOutputLinks { name } }`, nil)["nodesWithoutOutputLinks"]); !equalStrings(got, []string{"late"}) {
		t.Errorf("got %v, want [late]", got)
	}
}
