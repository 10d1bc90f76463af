package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/bionet/pkg/bionet"
)

// writeNet saves A -> B (+), C -> B (-) to dir/name
func writeNet(t *testing.T, dir, name string) string {
	t.Helper()
	net := bionet.New("cli")
	for _, n := range []string{"A", "B", "C"} {
		if _, err := net.CreateNode(n); err != nil {
			t.Fatalf("CreateNode(%s): %v", n, err)
		}
	}
	if _, err := net.CreateEdgeByName("A", "B", bionet.SignPair(bionet.None, bionet.Positive)); err != nil {
		t.Fatal(err)
	}
	if _, err := net.CreateEdgeByName("C", "B", bionet.SignPair(bionet.None, bionet.Negative)); err != nil {
		t.Fatal(err)
	}
	if err := net.AddParameter("k1", 0.05); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := net.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("BIONET_LOG_LEVEL", "ERROR")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_UsageAndVersion(t *testing.T) {
	code, _, stderr := runCLI(t)
	if code != 2 || !strings.Contains(stderr, "Commands:") {
		t.Errorf("no args: code %d, stderr %q", code, stderr)
	}

	code, stdout, _ := runCLI(t, "help")
	if code != 0 || !strings.Contains(stdout, "inspect") {
		t.Errorf("help: code %d, stdout %q", code, stdout)
	}

	code, stdout, _ = runCLI(t, "version")
	if code != 0 || !strings.Contains(stdout, version) {
		t.Errorf("version: code %d, stdout %q", code, stdout)
	}

	code, _, stderr = runCLI(t, "frobnicate")
	if code != 2 || !strings.Contains(stderr, "Unknown command") {
		t.Errorf("unknown: code %d, stderr %q", code, stderr)
	}

	code, _, stderr = runCLI(t, "inspect")
	if code != 2 || !strings.Contains(stderr, "Usage: bionet inspect <file>") {
		t.Errorf("missing arg: code %d, stderr %q", code, stderr)
	}
}

func TestRun_Inspect(t *testing.T) {
	path := writeNet(t, t.TempDir(), "net.json")
	code, stdout, stderr := runCLI(t, "inspect", path)
	if code != 0 {
		t.Fatalf("inspect failed: %s", stderr)
	}
	for _, want := range []string{
		"Network: cli",
		"Nodes:   3 (3 entities, 0 interactions)",
		"Edges:   2",
		"k1",
		"with positive input:     B",
		"without positive input:  A, C",
		"without outputs:         B",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_InspectMissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, "inspect", filepath.Join(t.TempDir(), "nope.json"))
	if code != 1 || !strings.Contains(stderr, "Error:") {
		t.Errorf("code %d, stderr %q", code, stderr)
	}
}

func TestRun_Query(t *testing.T) {
	path := writeNet(t, t.TempDir(), "net.yaml")
	code, stdout, stderr := runCLI(t, "query", path, `{ nodesWithNegativeInputLink { name } }`)
	if code != 0 {
		t.Fatalf("query failed: %s", stderr)
	}
	if !strings.Contains(stdout, `"name": "B"`) {
		t.Errorf("unexpected output %s", stdout)
	}

	code, stdout, _ = runCLI(t, "query", "-vars", `{"n":"A"}`, path, `query($n: String!) { nodeByName(name: $n) { outputs { name } } }`)
	if code != 0 || !strings.Contains(stdout, `"name": "B"`) {
		t.Errorf("query with vars: code %d, output %s", code, stdout)
	}

	code, _, _ = runCLI(t, "query", path, `{ nope }`)
	if code != 1 {
		t.Errorf("invalid field should fail, got code %d", code)
	}
}

func TestRun_Convert(t *testing.T) {
	dir := t.TempDir()
	in := writeNet(t, dir, "net.json")
	out := filepath.Join(dir, "net.sz")

	code, _, stderr := runCLI(t, "convert", in, out)
	if code != 0 {
		t.Fatalf("convert failed: %s", stderr)
	}
	loaded, err := bionet.Load(out)
	if err != nil {
		t.Fatalf("Load converted: %v", err)
	}
	if loaded.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", loaded.EdgeCount())
	}

	forced := filepath.Join(dir, "net.out")
	if code, _, stderr := runCLI(t, "convert", "-format", "yaml", in, forced); code != 0 {
		t.Fatalf("convert -format failed: %s", stderr)
	}
	if _, err := bionet.LoadAs(forced, bionet.FormatYAML); err != nil {
		t.Errorf("LoadAs yaml: %v", err)
	}
}

func TestRun_PushPullList(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	t.Setenv("BIONET_STORE_DRIVER", "fs")
	t.Setenv("BIONET_STORE_DIR", storeDir)
	in := writeNet(t, dir, "net.json")

	if code, _, stderr := runCLI(t, "push", in, "lab/net.yaml"); code != 0 {
		t.Fatalf("push failed: %s", stderr)
	}
	raw, err := os.ReadFile(filepath.Join(storeDir, "lab", "net.yaml"))
	if err != nil {
		t.Fatalf("stored file: %v", err)
	}
	if !strings.HasPrefix(string(raw), "name: cli") {
		t.Errorf("key extension should select YAML, got %q", raw[:20])
	}

	code, stdout, _ := runCLI(t, "list", "lab/")
	if code != 0 || strings.TrimSpace(stdout) != "lab/net.yaml" {
		t.Errorf("list: code %d, stdout %q", code, stdout)
	}

	out := filepath.Join(dir, "pulled.json")
	if code, _, stderr := runCLI(t, "pull", "lab/net.yaml", out); code != 0 {
		t.Fatalf("pull failed: %s", stderr)
	}
	pulled, err := bionet.Load(out)
	if err != nil {
		t.Fatalf("Load pulled: %v", err)
	}
	if got := pulled.NodeNames(pulled.NodesWithPositiveInputLink()); len(got) != 1 || got[0] != "B" {
		t.Errorf("pulled positive inputs = %v", got)
	}

	code, _, stderr := runCLI(t, "pull", "lab/absent.json", out)
	if code != 1 || !strings.Contains(stderr, "not found") {
		t.Errorf("pull missing: code %d, stderr %q", code, stderr)
	}
}

func TestRun_PushPullSQLite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BIONET_STORE_DRIVER", "sqlite")
	t.Setenv("BIONET_STORE_PATH", filepath.Join(dir, "db", "networks.db"))
	in := writeNet(t, dir, "net.json")

	if code, _, stderr := runCLI(t, "push", in, "lab/net.sz"); code != 0 {
		t.Fatalf("push failed: %s", stderr)
	}
	code, stdout, _ := runCLI(t, "list")
	if code != 0 || strings.TrimSpace(stdout) != "lab/net.sz" {
		t.Errorf("list: code %d, stdout %q", code, stdout)
	}

	out := filepath.Join(dir, "pulled.yaml")
	if code, _, stderr := runCLI(t, "pull", "lab/net.sz", out); code != 0 {
		t.Fatalf("pull failed: %s", stderr)
	}
	pulled, err := bionet.Load(out)
	if err != nil {
		t.Fatalf("Load pulled: %v", err)
	}
	if pulled.NodeCount() != 3 || pulled.EdgeCount() != 2 {
		t.Errorf("pulled %d nodes, %d edges", pulled.NodeCount(), pulled.EdgeCount())
	}
}

func TestRun_Metrics(t *testing.T) {
	path := writeNet(t, t.TempDir(), "net.json")
	code, stdout, stderr := runCLI(t, "metrics", path)
	if code != 0 {
		t.Fatalf("metrics failed: %s", stderr)
	}
	for _, want := range []string{
		`bionet_nodes_total 3`,
		`bionet_edges_total 2`,
		`bionet_query_results_total{query="nodes_with_positive_input_link"} 1`,
		`bionet_persistence_duration_seconds_count{operation="load"} 1`,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bionet.yaml")
	if err := os.WriteFile(cfgPath, []byte("store:\n  driver: ftp\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	path := writeNet(t, dir, "net.json")

	code, _, stderr := runCLI(t, "-config", cfgPath, "inspect", path)
	if code != 1 || !strings.Contains(stderr, "store.driver") {
		t.Errorf("bad config: code %d, stderr %q", code, stderr)
	}
}
