package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	ID      string `yaml:"id"                json:"id"`
	Title   string `yaml:"title"             json:"title"`
	Desktop int64  `yaml:"desktop"           json:"desktop"`
	PID     uint32 `yaml:"pid,omitempty"     json:"pid,omitempty"`
}

// capture redirects stdout around fn and returns what was written.
func capture(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestPrintYAML(t *testing.T) {
	v := sample{ID: "0x00000042", Title: "editor", Desktop: 1, PID: 1234}
	out := capture(t, func() error { return PrintYAML(v) })

	if bytes.Count([]byte(out), []byte("\n")) <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}

	var decoded sample
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded != v {
		t.Errorf("round trip: got %+v, want %+v", decoded, v)
	}
}

func TestPrintJSONIsCompact(t *testing.T) {
	v := sample{ID: "0x00000042", Title: "editor"}
	out := capture(t, func() error { return PrintJSON(v) })

	if strings.Count(out, "\n") != 1 {
		t.Errorf("compact JSON should be one line, got:\n%s", out)
	}
	var decoded sample
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestPrintPrettyJSONIsIndented(t *testing.T) {
	v := sample{ID: "0x00000042", Title: "editor"}
	out := capture(t, func() error { return PrintPrettyJSON(v) })

	if !strings.Contains(out, "\n  ") {
		t.Errorf("pretty JSON should be indented, got:\n%s", out)
	}
}

func TestPrintHonorsFormat(t *testing.T) {
	oldFormat, oldPretty := OutputFormat, PrettyOutput
	defer func() { OutputFormat, PrettyOutput = oldFormat, oldPretty }()

	v := sample{ID: "0x00000001"}

	OutputFormat = FormatJSON
	PrettyOutput = false
	out := capture(t, func() error { return Print(v) })
	if !strings.HasPrefix(out, "{") {
		t.Errorf("expected JSON, got:\n%s", out)
	}

	OutputFormat = FormatYAML
	out = capture(t, func() error { return Print(v) })
	if !strings.HasPrefix(out, "id:") {
		t.Errorf("expected YAML, got:\n%s", out)
	}

	OutputFormat = Format("xml")
	if err := Print(v); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestIsOutputPipedOnPipe(t *testing.T) {
	old := os.Stdout
	_, w, _ := os.Pipe()
	os.Stdout = w
	piped := IsOutputPiped()
	w.Close()
	os.Stdout = old

	if !piped {
		t.Error("pipe-backed stdout should report piped")
	}
}

func TestOmitEmpty(t *testing.T) {
	v := sample{ID: "0x00000001", Title: "x"}
	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["pid"]; ok {
		t.Error("zero pid should be omitted")
	}
}
