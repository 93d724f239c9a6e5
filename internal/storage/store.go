// Package storage keeps a manifest of the figures written to an output directory.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/cropviz/internal/chart"
)

const ManifestFile = "manifest.json"

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Entry records the files written for one chart.
type Entry struct {
	Chart    string    `json:"chart"`
	Group    string    `json:"group"`
	Files    []string  `json:"files"`
	Rendered time.Time `json:"rendered"`
}

// Manifest describes the settings of the last run and every chart rendered so far.
type Manifest struct {
	Updated time.Time `json:"updated"`
	Theme   string    `json:"theme"`
	DPI     int       `json:"dpi"`
	Seed    uint64    `json:"seed"`
	Samples int       `json:"samples"`
	Charts  []Entry   `json:"charts"`
}

// Run holds the settings of one render pass.
type Run struct {
	Theme   string
	DPI     int
	Seed    uint64
	Samples int
}

// Record merges the outputs of a run into the manifest. Charts rendered
// earlier keep their position; new charts are appended.
func (s *Store) Record(run Run, groups map[string]string, outputs []chart.Output) (*Manifest, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}

	m, err := s.Load()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m.Updated = now
	m.Theme = run.Theme
	m.DPI = run.DPI
	m.Seed = run.Seed
	m.Samples = run.Samples

	index := make(map[string]int, len(m.Charts))
	for i, e := range m.Charts {
		index[e.Chart] = i
	}
	for _, o := range outputs {
		e := Entry{Chart: o.Name, Group: groups[o.Name], Files: relative(s.baseDir, o.Files), Rendered: now}
		if i, ok := index[o.Name]; ok {
			m.Charts[i] = e
			continue
		}
		index[o.Name] = len(m.Charts)
		m.Charts = append(m.Charts, e)
	}

	return m, s.save(m)
}

func (s *Store) save(m *Manifest) error {
	f, err := os.Create(filepath.Join(s.baseDir, ManifestFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Load reads the manifest, returning an empty one when none exists yet.
func (s *Store) Load() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns the recorded charts whose files are all still present.
func (s *Store) List() ([]Entry, error) {
	m, err := s.Load()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(m.Charts))
	for _, e := range m.Charts {
		if s.present(e) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *Store) present(e Entry) bool {
	if len(e.Files) == 0 {
		return false
	}
	for _, f := range e.Files {
		if _, err := os.Stat(filepath.Join(s.baseDir, f)); err != nil {
			return false
		}
	}
	return true
}

func relative(base string, files []string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(base, f)
		if err != nil {
			rel = filepath.Base(f)
		}
		out[i] = rel
	}
	return out
}
