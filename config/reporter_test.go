package config

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReportStoreAndFinalize(t *testing.T) {
	dir := t.TempDir()

	conf := &ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	rpt, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	payload := filepath.Join(dir, "note.enml")
	if err := os.WriteFile(payload, []byte("<en-note/>"), 0644); err != nil {
		t.Fatalf("write payload: %v", err)
	}

	rpt.Store("notes/first.enml", payload)
	rpt.StoreData("config/config.yaml", []byte("version: 1"))
	rpt.StoreData("config/config.yaml", []byte("version: 1")) // versioned, must not panic

	if err := rpt.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	zr, err := zip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	joined := strings.Join(names, "\n")
	for _, want := range []string{"MANIFEST", "notes/first.enml", "config/config.yaml"} {
		if !strings.Contains(joined, want) {
			t.Errorf("report missing entry %q, have:\n%s", want, joined)
		}
	}
}

func TestReportNilSafe(t *testing.T) {
	var rpt *Report

	// all operations on a nil report are no-ops
	rpt.Store("a", "b")
	rpt.StoreData("c", []byte("d"))
	if got := rpt.Name(); got != "" {
		t.Errorf("Name on nil report = %q", got)
	}
	if err := rpt.Close(); err != nil {
		t.Errorf("Close on nil report: %v", err)
	}
}
