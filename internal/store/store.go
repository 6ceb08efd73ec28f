// Package store persists the two-level (service, item) document that backs
// Dworshak. The whole document is read from disk on every operation and
// rewritten on every mutation; nothing is cached between calls.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dworshak/dworshak/internal/derrors"
	"github.com/dworshak/dworshak/internal/logger"
)

const (
	dirMode  = 0700
	fileMode = 0600
	indent   = "    "
)

// Config is the process-wide configuration handed to New.
type Config struct {
	// DefaultPath is used whenever the caller path is unusable.
	DefaultPath string
	// Logger receives corruption warnings and I/O errors. Nil discards them.
	Logger *logger.Logger
}

// Store manages the on-disk document at a path fixed at construction.
type Store struct {
	path string
	log  *logger.Logger
}

// SetOutcome reports what Set did.
type SetOutcome int

const (
	// SetWritten means the value was written and a save was attempted.
	SetWritten SetOutcome = iota
	// SetSkipped means an existing value was kept because overwrite was false.
	SetSkipped
)

func (o SetOutcome) String() string {
	if o == SetSkipped {
		return "skipped"
	}
	return "written"
}

// Entry is one stored value with its address.
type Entry struct {
	Service string
	Item    string
	Value   string
}

// New creates a store. path is honored only if it already exists and has a
// .json suffix; otherwise cfg.DefaultPath is used.
func New(path string, cfg Config) *Store {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Store{
		path: ResolvePath(path, cfg.DefaultPath),
		log:  log.With("store"),
	}
}

// ResolvePath applies the caller-path rule used by New.
func ResolvePath(path, defaultPath string) string {
	if path == "" || !strings.HasSuffix(path, ".json") {
		return defaultPath
	}
	if _, err := os.Stat(path); err != nil {
		return defaultPath
	}
	return path
}

// Path returns the resolved document location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. It never fails: a missing, corrupted or
// unreadable file yields an empty document and the reason in Status.
func (s *Store) Load() LoadResult {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return LoadResult{Doc: Document{}, Status: LoadMissing}
	}
	if err != nil {
		err = derrors.NewStoreError(s.path, "failed to read store", err)
		s.log.Error().Str("path", s.path).Err(err).Msg("Failed to read config file")
		return LoadResult{Doc: Document{}, Status: LoadUnreadable, Err: err}
	}

	doc, dropped, err := decode(data)
	if err != nil {
		err = derrors.NewStoreError(s.path, "config file is corrupted", err)
		s.log.Warn().Str("path", s.path).Err(err).Msg("Config file is corrupted, treating it as empty")
		return LoadResult{Doc: Document{}, Status: LoadCorrupted, Err: err}
	}
	for _, key := range dropped {
		s.log.Warn().Str("path", s.path).Str("key", key).Msg("Skipping entry that is not a string value")
	}

	return LoadResult{Doc: doc, Status: LoadOK}
}

// Save replaces the file with doc. The document is written to a sibling
// temp file first and renamed into place.
func (s *Store) Save(doc Document) error {
	if err := s.save(doc); err != nil {
		s.log.Error().Str("path", s.path).Err(err).Msg("Failed to save configuration")
		return err
	}
	s.log.Debug().Str("path", s.path).Int("services", len(doc)).Msg("Saved configuration")
	return nil
}

func (s *Store) save(doc Document) error {
	if doc == nil {
		doc = Document{}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return derrors.NewStoreError(s.path, "failed to create store directory", err)
	}

	data, err := encode(doc)
	if err != nil {
		return derrors.NewStoreError(s.path, "failed to encode store", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return derrors.NewStoreError(s.path, "failed to create temp file", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return derrors.NewStoreError(s.path, "failed to write store", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return derrors.NewStoreError(s.path, "failed to set store permissions", err)
	}
	if err := tmp.Close(); err != nil {
		return derrors.NewStoreError(s.path, "failed to write store", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return derrors.NewStoreError(s.path, "failed to replace store", err)
	}
	return nil
}

// Get returns the value stored at (service, item).
func (s *Store) Get(service, item string) (string, bool) {
	return s.Load().Doc.Lookup(service, item)
}

// Set stores value at (service, item). With overwrite false an existing
// value is left untouched. Save failures are logged, not returned; callers
// that need certainty read the value back.
func (s *Store) Set(service, item, value string, overwrite bool) SetOutcome {
	doc := s.Load().Doc

	if _, exists := doc.Lookup(service, item); exists && !overwrite {
		s.log.Info().Str("service", service).Str("item", item).
			Msg("Skipping set: value already exists and overwrite is disabled")
		return SetSkipped
	}

	if doc[service] == nil {
		doc[service] = map[string]string{}
	}
	doc[service][item] = value
	_ = s.Save(doc)
	return SetWritten
}

// Remove deletes (service, item) and reports whether it existed. A service
// left without items is removed as well.
func (s *Store) Remove(service, item string) bool {
	doc := s.Load().Doc
	if _, exists := doc.Lookup(service, item); !exists {
		return false
	}

	delete(doc[service], item)
	if len(doc[service]) == 0 {
		delete(doc, service)
	}
	_ = s.Save(doc)
	return true
}

// ListEntries returns every stored entry sorted by service then item.
func (s *Store) ListEntries() []Entry {
	return s.Load().Doc.Entries()
}

func encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decode parses data into a Document. It fails only when data is not a
// JSON object; entries of the wrong shape are dropped and their keys
// returned so the caller can report them.
func decode(data []byte) (Document, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, nil, err
	}
	if dec.More() {
		return nil, nil, fmt.Errorf("unexpected data after top-level value")
	}

	top, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("top-level value is %s, not an object", jsonKind(raw))
	}

	doc := make(Document, len(top))
	var dropped []string
	for service, rawItems := range top {
		items, ok := rawItems.(map[string]any)
		if !ok {
			dropped = append(dropped, service)
			continue
		}
		for item, rawValue := range items {
			value, ok := scalarText(rawValue)
			if !ok {
				dropped = append(dropped, service+"/"+item)
				continue
			}
			if doc[service] == nil {
				doc[service] = map[string]string{}
			}
			doc[service][item] = value
		}
	}
	sort.Strings(dropped)
	return doc, dropped, nil
}

func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		if t {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case []any:
		return "an array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
