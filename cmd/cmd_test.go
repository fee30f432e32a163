package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestExportCommandWritesPNG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "diagram.json")
	os.WriteFile(in, []byte(`{
		"shapes": [
			{"id": 1, "name": "User", "kind": "entity", "x": 100, "y": 100, "width": 140, "height": 60},
			{"id": 2, "name": "owns", "kind": "action", "x": 400, "y": 100, "width": 120, "height": 70}
		],
		"connections": [{"id": 1, "from": 1, "to": 2, "start": "exactly-one", "end": "many"}]
	}`), 0644)
	out := filepath.Join(dir, "diagram.png")

	cmd := exportCmd()
	cmd.SetArgs([]string{in, "-o", out, "-f", "png"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("output is not a decodable PNG: %v", err)
	}
}

func TestExportCommandRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "diagram.json")
	os.WriteFile(in, []byte(`{"shapes": [], "connections": []}`), 0644)

	cmd := exportCmd()
	cmd.SetArgs([]string{in, "-f", "svg"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSQLCreateCommand(t *testing.T) {
	cmd := sqlCreateCmd()
	cmd.SetArgs([]string{"users", "-c", "id:int:pa", "-c", "email:varchar:255:nu"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("sql create failed: %v", err)
	}
}

func TestSQLCreateCommandRejectsBadSpec(t *testing.T) {
	cmd := sqlCreateCmd()
	cmd.SetArgs([]string{"users", "-c", "justaname"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for malformed column spec")
	}
}

func TestSQLAlterCommandRequiresOperation(t *testing.T) {
	cmd := sqlAlterCmd()
	cmd.SetArgs([]string{"users"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error when no operation flag is given")
	}
}
