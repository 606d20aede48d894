// Package source loads PRQL syntax trees from JSON or YAML documents.
//
// Both formats carry the same tag-and-payload shape understood by
// ast.Node's JSON codec; YAML documents are converted to JSON first.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulomach/prql/pkg/ast"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a tree document.
type Format string

// Format constants.
const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name. The empty string means FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown input format %q (expected auto, json or yaml)", name)
	}
}

// Document is a loaded tree and the file it came from.
type Document struct {
	Path string
	Root *ast.Node
}

// Load reads and decodes the tree stored at path.
// With FormatAuto the format is taken from the file extension, falling
// back to sniffing the content.
func Load(path string, format Format) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if format == FormatAuto {
		format = formatFromExt(path)
	}

	root, err := DecodeBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &Document{Path: path, Root: root}, nil
}

// Decode reads a whole tree document from r.
func Decode(r io.Reader, format Format) (*ast.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data, format)
}

// DecodeBytes decodes a tree document held in memory.
func DecodeBytes(data []byte, format Format) (*ast.Node, error) {
	if format == FormatAuto {
		format = sniff(data)
	}

	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	var root ast.Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

func formatFromExt(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// sniff treats anything that opens with a JSON object as JSON.
func sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("empty document")
	}
	return json.Marshal(normalize(doc))
}

// normalize rewrites YAML maps with non-string keys into JSON-compatible
// maps.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}
