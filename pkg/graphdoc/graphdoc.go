package graphdoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/mindloom/mindloom/pkg/mindmap"
)

// Document is the serialized form of a mind map.
type Document struct {
	Nodes []mindmap.Node `json:"nodes"`
	Edges []mindmap.Edge `json:"edges"`
}

// Empty returns a document with no nodes or edges.
func Empty() Document {
	return Document{}
}

// FromStore captures the current state of a store as a document.
func FromStore(s *mindmap.Store) Document {
	return Document{Nodes: s.Nodes(), Edges: s.Edges()}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	return Document{
		Nodes: mindmap.CloneNodes(d.Nodes),
		Edges: mindmap.CloneEdges(d.Edges),
	}
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal converts a document to indented JSON bytes.
func Marshal(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a document.
func Unmarshal(data []byte) (Document, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes a document as JSON to an io.Writer.
func Write(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON document from an io.Reader.
func Read(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// WriteFile writes a document to a JSON file with 0644 permissions.
func WriteFile(d Document, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// ReadFile reads a JSON file and returns the decoded document.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// LoadOrEmpty reads a persisted document, falling back to an empty one
// when the file is missing or fails to parse. The fallback is wholesale:
// a malformed blob is never partially applied. Parse failures are logged
// so data loss is visible, not silent.
func LoadOrEmpty(path string, logger *log.Logger) Document {
	d, err := ReadFile(path)
	if err != nil {
		if logger != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("discarding unreadable document", "path", path, "err", err)
		}
		return Empty()
	}
	return d
}
