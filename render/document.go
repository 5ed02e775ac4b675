// SPDX-License-Identifier: MIT
// Package: dragonfly/render
//
// document.go - serializable description of a topology.
//
// A Document is fully instantiated and pointer-free apart from the optional
// saturation record, so it marshals identically to YAML and JSON. Router
// addresses are stored in their "<group>-<chassis>-<slot>" text form.
// WriteToFile picks the encoding from the file extension.

package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dragonfly/topology"
)

// ErrUnknownFormat indicates an unsupported file extension or format name.
var ErrUnknownFormat = errors.New("render: unknown document format")

// ErrInvalidDocument indicates a stored document whose connections do not
// fit its own configuration.
var ErrInvalidDocument = errors.New("render: invalid document")

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath maps .yaml/.yml/.json (any case) to a Format.
func FormatFromPath(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
}

// ConnectionDesc is the serializable form of topology.Connection.
type ConnectionDesc struct {
	A     string `json:"a" yaml:"a"`
	B     string `json:"b" yaml:"b"`
	Rank  int    `json:"rank" yaml:"rank"`
	Links int    `json:"links" yaml:"links"`
}

// RouterDesc is one ledger entry.
type RouterDesc struct {
	Router string `json:"router" yaml:"router"`
	Used   int    `json:"used" yaml:"used"`
}

// PairDesc is one rank-3 router-pair counter.
type PairDesc struct {
	A           string `json:"a" yaml:"a"`
	B           string `json:"b" yaml:"b"`
	Connections int    `json:"connections" yaml:"connections"`
}

// Document is the stored form of a built topology.
type Document struct {
	Config      topology.Config      `json:"config" yaml:"config"`
	Connections []ConnectionDesc     `json:"connections" yaml:"connections"`
	Routers     []RouterDesc         `json:"routers" yaml:"routers"`
	Pairs       []PairDesc           `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	Saturation  *topology.Saturation `json:"saturation,omitempty" yaml:"saturation,omitempty"`
}

// NewDocument describes t.
func NewDocument(t *topology.Topology) *Document {
	conns := t.Connections()
	doc := &Document{
		Config:      t.Config(),
		Connections: make([]ConnectionDesc, len(conns)),
	}
	for i, c := range conns {
		doc.Connections[i] = ConnectionDesc{A: c.A.String(), B: c.B.String(), Rank: int(c.Rank), Links: c.Links}
	}

	for _, u := range t.Ledger().Snapshot() {
		doc.Routers = append(doc.Routers, RouterDesc{Router: u.Router.String(), Used: u.Used})
	}
	for _, p := range t.PairStats() {
		doc.Pairs = append(doc.Pairs, PairDesc{A: p.Key.A.String(), B: p.Key.B.String(), Connections: p.Connections})
	}
	if sat, ok := t.Saturation(); ok {
		doc.Saturation = &sat
	}

	return doc
}

// Links checks the stored connections against the document's Config and
// expands them into physical links, in order. Every entry must carry a valid
// rank, two distinct routers of the system and exactly LPC(rank) links, and
// no router may exceed the port budget; otherwise ErrInvalidDocument.
func (d *Document) Links() ([]topology.Link, error) {
	if err := d.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", err, ErrInvalidDocument)
	}

	ledger := topology.NewPortLedger(d.Config)
	var out []topology.Link
	for i, c := range d.Connections {
		a, b, rank, err := d.connection(i, c)
		if err != nil {
			return nil, err
		}
		if err := ledger.Allocate(a, c.Links); err != nil {
			return nil, fmt.Errorf("connection %d: %w: %w", i, err, ErrInvalidDocument)
		}
		if err := ledger.Allocate(b, c.Links); err != nil {
			return nil, fmt.Errorf("connection %d: %w: %w", i, err, ErrInvalidDocument)
		}
		for k := 0; k < c.Links; k++ {
			out = append(out, topology.Link{A: a, B: b, Rank: rank})
		}
	}
	return out, nil
}

// connection parses and checks entry i.
func (d *Document) connection(i int, c ConnectionDesc) (a, b topology.RouterAddress, rank topology.Rank, err error) {
	if a, err = topology.ParseRouterAddress(c.A); err != nil {
		return a, b, rank, fmt.Errorf("connection %d: %w", i, err)
	}
	if b, err = topology.ParseRouterAddress(c.B); err != nil {
		return a, b, rank, fmt.Errorf("connection %d: %w", i, err)
	}

	rank = topology.Rank(c.Rank)
	switch {
	case !rank.Valid():
		err = fmt.Errorf("connection %d: rank %d", i, c.Rank)
	case !d.Config.Contains(a) || !d.Config.Contains(b):
		err = fmt.Errorf("connection %d: %s -- %s outside %s", i, a, b, d.Config)
	case a == b:
		err = fmt.Errorf("connection %d: %s connected to itself", i, a)
	case c.Links != d.Config.LPC(rank):
		err = fmt.Errorf("connection %d: %d links, %s carries %d", i, c.Links, rank, d.Config.LPC(rank))
	}
	if err != nil {
		return a, b, rank, fmt.Errorf("%v: %w", err, ErrInvalidDocument)
	}
	return a, b, rank, nil
}

// Encode writes d to w in format f.
func (d *Document) Encode(w io.Writer, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(d)
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
}

// WriteToFile stores d in filename, as YAML or JSON according to its extension.
func (d *Document) WriteToFile(filename string) error {
	f, err := FormatFromPath(filename)
	if err != nil {
		return err
	}

	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := d.Encode(out, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ReadDocument deserializes a Document. If dict is empty the bytes are read
// from filename; the encoding always follows filename's extension.
func ReadDocument(filename string, dict []byte) (*Document, error) {
	f, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}

	if len(dict) == 0 {
		dict, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
	}

	doc := &Document{}
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(dict, doc)
	default:
		err = json.Unmarshal(dict, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("ReadDocument(%s): %w", filename, err)
	}

	return doc, nil
}
