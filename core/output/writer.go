// Package output is the file-backed entity sink. Each saved entity becomes
// one JSON file under <dir>/<jurisdiction>/{committees,legislators}/, and
// every save is kept in an in-memory snapshot for the roster renderers.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gaurav-prasanna/legispipe/core"
)

// Snapshot is everything saved for one jurisdiction, in save order.
type Snapshot struct {
	Jurisdiction string
	Committees   []*core.Committee
	Legislators  []*core.Legislator
}

// Writer serialises entity writes. A Writer with an empty OutputDir only
// keeps the snapshot.
type Writer struct {
	OutputDir string

	mu        sync.Mutex
	snapshots map[string]*Snapshot
	names     map[string]bool
}

// New creates a Writer targeting the given output directory, creating it
// if needed.
func New(outputDir string) (*Writer, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{
		OutputDir: outputDir,
		snapshots: map[string]*Snapshot{},
		names:     map[string]bool{},
	}, nil
}

// NewMemory creates a Writer that writes no files.
func NewMemory() *Writer {
	w, _ := New("")
	return w
}

// For returns the sink for one jurisdiction.
func (w *Writer) For(jurisdiction string) core.Sink {
	return &sink{w: w, jurisdiction: jurisdiction}
}

// Snapshot returns a copy of what has been saved for a jurisdiction.
func (w *Writer) Snapshot(jurisdiction string) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.snapshots[jurisdiction]
	if !ok {
		return Snapshot{Jurisdiction: jurisdiction}
	}
	return Snapshot{
		Jurisdiction: jurisdiction,
		Committees:   append([]*core.Committee(nil), s.Committees...),
		Legislators:  append([]*core.Legislator(nil), s.Legislators...),
	}
}

// Jurisdictions returns the jurisdictions with at least one saved
// entity, sorted.
func (w *Writer) Jurisdictions() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make([]string, 0, len(w.snapshots))
	for id := range w.snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WriteFile writes a rendered artefact directly under the output directory.
func (w *Writer) WriteFile(name string, data []byte) (string, error) {
	if w.OutputDir == "" {
		return "", fmt.Errorf("writing %s: no output directory", name)
	}
	path := filepath.Join(w.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

type sink struct {
	w            *Writer
	jurisdiction string
}

func (s *sink) SaveCommittee(ctx context.Context, c *core.Committee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.w.mu.Lock()
	defer s.w.mu.Unlock()

	name := string(c.Chamber) + "_" + sanitize(c.Name)
	if err := s.w.writeEntity(s.jurisdiction, "committees", name, c); err != nil {
		return err
	}
	snap := s.w.snapshot(s.jurisdiction)
	snap.Committees = append(snap.Committees, c)
	return nil
}

func (s *sink) SaveLegislator(ctx context.Context, l *core.Legislator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.w.mu.Lock()
	defer s.w.mu.Unlock()

	name := strings.Join([]string{string(l.Chamber), sanitize(l.District), sanitize(l.Name)}, "_")
	if err := s.w.writeEntity(s.jurisdiction, "legislators", name, l); err != nil {
		return err
	}
	snap := s.w.snapshot(s.jurisdiction)
	snap.Legislators = append(snap.Legislators, l)
	return nil
}

// snapshot must be called with mu held.
func (w *Writer) snapshot(jurisdiction string) *Snapshot {
	s, ok := w.snapshots[jurisdiction]
	if !ok {
		s = &Snapshot{Jurisdiction: jurisdiction}
		w.snapshots[jurisdiction] = s
	}
	return s
}

// writeEntity must be called with mu held. Names already used in this run
// get a numeric suffix.
func (w *Writer) writeEntity(jurisdiction, kind, name string, v any) error {
	if w.OutputDir == "" {
		return nil
	}
	dir := filepath.Join(w.OutputDir, jurisdiction, kind)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name+".json")
	for i := 2; w.names[path]; i++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.json", name, i))
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	w.names[path] = true
	return nil
}

// FilenameFromURL converts a URL into a flat filename.
// Example: http://legis.delaware.gov/LIS/bill.htm → legis_delaware_gov_LIS_bill_htm
func FilenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
