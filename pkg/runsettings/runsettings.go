package runsettings

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/testrig-dev/testrig/pkg/errors"
	"github.com/testrig-dev/testrig/pkg/filesystem"
)

// RootElement is the document root of every run-settings file.
const RootElement = "RunSettings"

// TestAdaptersPathsKey is the node path holding the semicolon-delimited
// list of adapter directories.
const TestAdaptersPathsKey = "RunConfiguration.TestAdaptersPaths"

// Store is an in-memory run-settings document. One instance is shared per
// run; processors query and update it sequentially.
type Store struct {
	doc *etree.Document
}

// New creates an empty run-settings document
func New() *Store {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.CreateElement(RootElement)
	return &Store{doc: doc}
}

// Parse builds a store from serialized XML
func Parse(data []byte) (*Store, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "malformed run-settings document")
	}
	if doc.SelectElement(RootElement) == nil {
		return nil, errors.Newf(errors.ErrSettingsLoad, "run-settings document has no <%s> root", RootElement)
	}
	return &Store{doc: doc}, nil
}

// Load reads and parses a run-settings file
func Load(fsys filesystem.FS, path string) (*Store, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "cannot read run-settings file %q", path)
	}
	return Parse(data)
}

// LoadFrom replaces the document with the contents of a run-settings file.
// The store identity is preserved so other holders of the pointer see the
// new document.
func (s *Store) LoadFrom(fsys filesystem.FS, path string) error {
	loaded, err := Load(fsys, path)
	if err != nil {
		return err
	}
	s.doc = loaded.doc
	return nil
}

// QueryNode returns the text of the element at the dotted node path,
// or false if the element is absent.
func (s *Store) QueryNode(key string) (string, bool) {
	el := s.root()
	for _, name := range splitKey(key) {
		el = el.SelectElement(name)
		if el == nil {
			return "", false
		}
	}
	return el.Text(), true
}

// UpdateNode sets the text of the element at the dotted node path,
// creating intermediate elements as needed and overwriting any existing
// value.
func (s *Store) UpdateNode(key, value string) {
	el := s.root()
	for _, name := range splitKey(key) {
		child := el.SelectElement(name)
		if child == nil {
			child = el.CreateElement(name)
		}
		el = child
	}
	el.SetText(value)
}

// Serialize renders the document as indented XML
func (s *Store) Serialize() ([]byte, error) {
	s.doc.Indent(2)
	data, err := s.doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsSave, "cannot serialize run-settings document")
	}
	return data, nil
}

// Save writes the document to a file
func (s *Store) Save(fsys filesystem.FS, path string) error {
	data, err := s.Serialize()
	if err != nil {
		return err
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrSettingsSave, "cannot write run-settings file %q", path)
	}
	return nil
}

func (s *Store) root() *etree.Element {
	return s.doc.SelectElement(RootElement)
}

func splitKey(key string) []string {
	return strings.Split(key, ".")
}
