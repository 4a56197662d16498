package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/vdom/cmd/vdom/internal/config"
	"github.com/go-drift/vdom/pkg/errors"
)

const listDoc = `
steps:
  - name: initial
    tree:
      tag: ul
      children:
        - {tag: li, key: a, text: A}
        - {tag: li, key: b, text: B}
        - {tag: li, key: c, text: C}
  - name: rotated
    tree:
      tag: ul
      children:
        - {tag: li, key: c, text: C}
        - {tag: li, key: a, text: A}
        - {tag: li, key: b, text: B}
`

// runCLI runs the CLI against an isolated project dir and captures stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvContainer, "")
	t.Cleanup(func() { errors.SetHandler(nil) })

	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = os.Stdout, os.Stderr })

	dir := t.TempDir()
	err := Run(append([]string{"--dir", dir}, args...))
	return out.String(), err
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRender_LastStep(t *testing.T) {
	out, err := runCLI(t, "render", writeDoc(t, "list.yaml", listDoc))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != "<ul><li>C</li><li>A</li><li>B</li></ul>" {
		t.Errorf("output = %q", got)
	}
}

func TestRender_EveryStepPretty(t *testing.T) {
	out, err := runCLI(t, "render", "--steps", "--pretty", writeDoc(t, "list.yaml", listDoc))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# initial", "# rotated", "<ul>", `    "C"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_Components(t *testing.T) {
	doc := `
[[steps]]
[steps.tree]
tag = "main"
[[steps.tree.children]]
component = "Greeting"
props = { name = "toml" }
[[steps.tree.children]]
component = "Counter"
props = { initial = 3 }
[[steps.tree.children]]
component = "Badge"
props = { label = "new", tone = "ok" }
`
	out, err := runCLI(t, "render", writeDoc(t, "page.toml", doc))
	if err != nil {
		t.Fatal(err)
	}
	want := `<main><h1>hello toml</h1><button>count: 3</button><span class="badge badge-ok">new</span></main>`
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("output = %s\nwant     %s", got, want)
	}
}

func TestTrace_ReportsMinimalMove(t *testing.T) {
	out, err := runCLI(t, "trace", "--step", "rotated", writeDoc(t, "list.yaml", listDoc))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "initial") {
		t.Errorf("trace should skip other steps:\n%s", out)
	}
	for _, want := range []string{"rotated (1 ops)", "move <li> into <ul> before <li>", "total"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTrace_UnknownStep(t *testing.T) {
	if _, err := runCLI(t, "trace", "--step", "nope", writeDoc(t, "list.yaml", listDoc)); err == nil {
		t.Error("expected error for unknown step")
	}
}

func TestCheck(t *testing.T) {
	good := writeDoc(t, "good.yaml", listDoc)
	bad := writeDoc(t, "bad.yaml", "steps:\n  - tree: {component: Missing}\n")

	out, err := runCLI(t, "check", good, bad)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("err = %v", err)
	}
	if !strings.Contains(out, "ok   "+good+" (2 steps)") || !strings.Contains(out, "FAIL "+bad) {
		t.Errorf("output = %s", out)
	}
}

func TestRun_HelpVersionAndUnknown(t *testing.T) {
	out, err := runCLI(t, "--version")
	if err != nil || !strings.HasPrefix(out, "vdom version "+Version) {
		t.Errorf("version: %q, %v", out, err)
	}

	out, _ = runCLI(t)
	if !strings.Contains(out, "render") || !strings.Contains(out, "trace") {
		t.Errorf("help = %s", out)
	}

	out, _ = runCLI(t, "render", "--help")
	if !strings.Contains(out, "vdom render <file>") {
		t.Errorf("command help = %s", out)
	}

	if _, err := runCLI(t, "frobnicate"); err == nil {
		t.Error("expected error for unknown command")
	}
	if _, err := runCLI(t, "render"); err == nil {
		t.Error("expected error without a document")
	}
}

func TestRun_ConfigContainer(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	t.Cleanup(func() { errors.SetHandler(nil) })
	var out bytes.Buffer
	stdout, stderr = &out, &bytes.Buffer{}
	t.Cleanup(func() { stdout, stderr = os.Stdout, os.Stderr })

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "vdom.toml"), []byte("[render]\ncontainer = \"app\"\npretty = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvContainer, "")
	doc := writeDoc(t, "portal.yaml", `
steps:
  - tree:
      tag: "#portal"
      target: "#app"
      children: [{tag: p, text: in app}]
`)
	if err := Run([]string{"--dir=" + dir, "render", doc}); err != nil {
		t.Fatal(err)
	}
	// pretty = true comes from vdom.toml.
	if got := out.String(); !strings.Contains(got, "<p>\n  \"in app\"") {
		t.Errorf("output = %q", got)
	}
}
