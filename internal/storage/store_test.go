package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cropviz/internal/chart"
)

func touch(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
		if err := os.WriteFile(paths[i], []byte("x"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	return paths
}

func TestStoreRecordLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	outputs := []chart.Output{
		{Name: "rp_vs_pg", Dir: tmpDir, Files: touch(t, tmpDir, "rp_vs_pg.png", "rp_vs_pg.pdf")},
	}
	run := Run{Theme: "whitegrid", DPI: 300, Seed: 42, Samples: 300}

	if _, err := st.Record(run, map[string]string{"rp_vs_pg": "ratio"}, outputs); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	m, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if m.Seed != 42 || m.Theme != "whitegrid" {
		t.Errorf("unexpected run settings %+v", m)
	}
	if len(m.Charts) != 1 {
		t.Fatalf("expected 1 chart, got %d", len(m.Charts))
	}
	e := m.Charts[0]
	if e.Group != "ratio" || e.Files[0] != "rp_vs_pg.png" {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestStoreRecordMerges(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	groups := map[string]string{"a": "g", "b": "g"}

	first := []chart.Output{
		{Name: "a", Files: touch(t, tmpDir, "a.png")},
		{Name: "b", Files: touch(t, tmpDir, "b.png")},
	}
	if _, err := st.Record(Run{DPI: 300}, groups, first); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	second := []chart.Output{{Name: "a", Files: touch(t, tmpDir, "a.png", "a.svg")}}
	m, err := st.Record(Run{DPI: 96}, groups, second)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	if m.DPI != 96 {
		t.Errorf("expected latest dpi 96, got %d", m.DPI)
	}
	if len(m.Charts) != 2 || m.Charts[0].Chart != "a" || m.Charts[1].Chart != "b" {
		t.Fatalf("expected order a, b, got %+v", m.Charts)
	}
	if len(m.Charts[0].Files) != 2 {
		t.Errorf("expected a to be replaced, got %v", m.Charts[0].Files)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	entries, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(entries))
	}

	outputs := []chart.Output{
		{Name: "kept", Files: touch(t, tmpDir, "kept.png")},
		{Name: "gone", Files: touch(t, tmpDir, "gone.png")},
	}
	if _, err := st.Record(Run{}, nil, outputs); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := os.Remove(filepath.Join(tmpDir, "gone.png")); err != nil {
		t.Fatal(err)
	}

	entries, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Chart != "kept" {
		t.Errorf("expected only kept, got %+v", entries)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "figures")
	st := New(tmpDir)

	if _, err := st.Record(Run{}, nil, nil); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, ManifestFile)); os.IsNotExist(err) {
		t.Error("manifest.json not created")
	}
}
