package matrixio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/littletsp/tsp"
)

// Format names a file encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// Detect picks a format from the file extension; unknown extensions are text.
func Detect(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	return FormatText
}

// document is the TOML/YAML shape of an instance.
type document struct {
	Name   string   `toml:"name" yaml:"name"`
	Labels []string `toml:"labels,omitempty" yaml:"labels,omitempty"`
	Matrix [][]any  `toml:"matrix" yaml:"matrix"`
}

// jsonDocument is the JSON shape; Cost decodes its own tokens.
type jsonDocument struct {
	Name   string       `json:"name,omitempty"`
	Labels []string     `json:"labels,omitempty"`
	Matrix [][]tsp.Cost `json:"matrix"`
}

// ParseFormat validates a format name ("yml" is accepted for YAML, "txt" for
// text).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTOML, FormatJSON, FormatYAML, FormatText:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "txt":
		return FormatText, nil
	}

	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// ReadFile reads an instance, detecting the format from the extension.
func ReadFile(path string) (*Instance, error) {
	return ReadFileAs(path, Detect(path))
}

// ReadFileAs reads an instance in format f. When the file carries no name,
// the base name without extension is used.
func ReadFileAs(path string, f Format) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	inst, err := Read(bytes.NewReader(data), f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if inst.Name == "" {
		inst.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return inst, nil
}

// Read decodes an instance in format f from r.
func Read(r io.Reader, f Format) (*Instance, error) {
	switch f {
	case FormatTOML:
		var doc document
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		return fromDocument(doc)
	case FormatYAML:
		var doc document
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return fromDocument(doc)
	case FormatJSON:
		var doc jsonDocument
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return newInstance(doc.Name, doc.Labels, doc.Matrix)
	case FormatText:
		return readText(r)
	}

	return nil, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
}

func fromDocument(doc document) (*Instance, error) {
	rows, err := rowsFromAny(doc.Matrix)
	if err != nil {
		return nil, err
	}

	return newInstance(doc.Name, doc.Labels, rows)
}

// readText parses whitespace separated rows. Blank lines and everything after
// "#" are ignored.
func readText(r io.Reader) (*Instance, error) {
	var (
		rows [][]tsp.Cost
		line int
		sc   = bufio.NewScanner(r)
	)
	for sc.Scan() {
		line++
		text, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		row := make([]tsp.Cost, len(fields))
		for i, tok := range fields {
			c, err := tsp.ParseCost(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q: %w", line, tok, ErrBadCell)
			}
			row[i] = c
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, tsp.ErrNilMatrix
	}

	return newInstance("", nil, rows)
}

// WriteFile writes inst in the format detected from path.
func WriteFile(path string, inst *Instance) error {
	var buf bytes.Buffer
	if err := Write(&buf, inst, Detect(path)); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Write encodes inst in format f.
func Write(w io.Writer, inst *Instance, f Format) error {
	switch f {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(toDocument(inst))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toDocument(inst)); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonDocument{Name: inst.Name, Labels: inst.Labels, Matrix: inst.Matrix.Rows()})
	case FormatText:
		if inst.Name != "" {
			if _, err := fmt.Fprintf(w, "# %s\n", inst.Name); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, inst.Matrix.String())
		return err
	}

	return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
}

func toDocument(inst *Instance) document {
	return document{Name: inst.Name, Labels: inst.Labels, Matrix: rowsToAny(inst.Matrix)}
}
