package bionet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/golang/snappy"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/bionet/pkg/validation"
)

// Format selects the persisted encoding of a network
type Format uint8

const (
	// FormatJSON is indented JSON
	FormatJSON Format = iota
	// FormatYAML is a YAML document with the same field names as JSON
	FormatYAML
	// FormatSnappyJSON is compact JSON in a snappy block
	FormatSnappyJSON
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatSnappyJSON:
		return "snappy"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat accepts "json", "yaml"/"yml" and "snappy"/"sz"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "snappy", "sz":
		return FormatSnappyJSON, nil
	default:
		return FormatJSON, fmt.Errorf("unknown format %q", s)
	}
}

// FormatFromPath picks a format from the file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".sz", ".snappy":
		return FormatSnappyJSON
	default:
		return FormatJSON
	}
}

// document is the persisted shape of a network. The id counter is not part
// of it.
type document struct {
	Name       string       `json:"name" yaml:"name"`
	Nodes      []nodeRecord `json:"nodes" yaml:"nodes"`
	Edges      []edgeRecord `json:"edges" yaml:"edges"`
	Parameters []Parameter  `json:"parameters" yaml:"parameters"`
}

type nodeRecord struct {
	ID          uint64   `json:"id" yaml:"id"`
	Type        string   `json:"type" yaml:"type"`
	Active      bool     `json:"active" yaml:"active"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	InputLinks  []uint64 `json:"input_links" yaml:"input_links"`
	OutputLinks []uint64 `json:"output_links" yaml:"output_links"`
}

type signsRecord struct {
	Source string `json:"source" yaml:"source"`
	Dest   string `json:"dest" yaml:"dest"`
}

type edgeRecord struct {
	ID       uint64      `json:"id" yaml:"id"`
	Active   bool        `json:"active" yaml:"active"`
	Src      uint64      `json:"src" yaml:"src"`
	Dest     uint64      `json:"dest" yaml:"dest"`
	Signs    signsRecord `json:"signs" yaml:"signs"`
	Value    float64     `json:"value" yaml:"value"`
	LinkType string      `json:"link_type" yaml:"link_type"`
	Reaction *Reaction   `json:"reaction,omitempty" yaml:"reaction,omitempty"`
}

func (b *BioNet) toDocument() document {
	doc := document{
		Name:       b.name,
		Nodes:      []nodeRecord{},
		Edges:      []edgeRecord{},
		Parameters: b.Parameters(),
	}
	for _, n := range b.Nodes() {
		doc.Nodes = append(doc.Nodes, nodeRecord{
			ID:          n.ID,
			Type:        n.Type.String(),
			Active:      n.Active,
			Name:        n.Name,
			Description: n.Description,
			InputLinks:  n.InputLinks,
			OutputLinks: n.OutputLinks,
		})
	}
	for _, e := range b.Edges() {
		doc.Edges = append(doc.Edges, edgeRecord{
			ID:       e.ID,
			Active:   e.Active,
			Src:      e.Src,
			Dest:     e.Dest,
			Signs:    signsRecord{Source: e.Signs.Source.String(), Dest: e.Signs.Dest.String()},
			Value:    e.Value,
			LinkType: e.LinkType.String(),
			Reaction: e.Reaction,
		})
	}
	return doc
}

// fromDocument rebuilds a network and checks every structural invariant a
// network built through the construction API would satisfy.
func fromDocument(doc document, opts ...Option) (*BioNet, error) {
	b := New(doc.Name, opts...)
	seen := make(map[uint64]string)
	var maxID uint64
	var haveID bool
	claim := func(id uint64, kind string) error {
		if id == math.MaxUint64 {
			return malformed("%s id %d is reserved", kind, id)
		}
		if prev, dup := seen[id]; dup {
			return malformed("id %d used by both %s and %s", id, prev, kind)
		}
		seen[id] = kind
		if !haveID || id > maxID {
			maxID = id
		}
		haveID = true
		return nil
	}

	for _, rec := range doc.Nodes {
		if err := claim(rec.ID, "node"); err != nil {
			return nil, err
		}
		if err := validation.ValidateName(rec.Name); err != nil {
			return nil, malformed("node %d: %v", rec.ID, err)
		}
		typ, err := ParseNodeType(rec.Type)
		if err != nil {
			return nil, malformed("node %d: %v", rec.ID, err)
		}
		if err := validation.ValidateDescription(rec.Description); err != nil {
			return nil, malformed("node %d: %v", rec.ID, err)
		}
		if _, dup := b.nameIndex[rec.Name]; dup {
			return nil, malformed("node %d: duplicate name %q", rec.ID, rec.Name)
		}
		b.nodes[rec.ID] = &Node{
			ID:          rec.ID,
			Type:        typ,
			Active:      rec.Active,
			Name:        rec.Name,
			Description: rec.Description,
			InputLinks:  cloneOrEmpty(rec.InputLinks),
			OutputLinks: cloneOrEmpty(rec.OutputLinks),
		}
		b.nameIndex[rec.Name] = rec.ID
	}

	for _, rec := range doc.Edges {
		if err := claim(rec.ID, "edge"); err != nil {
			return nil, err
		}
		if _, ok := b.nodes[rec.Src]; !ok {
			return nil, malformed("edge %d: source node %d does not exist", rec.ID, rec.Src)
		}
		if _, ok := b.nodes[rec.Dest]; !ok {
			return nil, malformed("edge %d: destination node %d does not exist", rec.ID, rec.Dest)
		}
		src, err := ParseSign(rec.Signs.Source)
		if err != nil {
			return nil, malformed("edge %d: %v", rec.ID, err)
		}
		dest, err := ParseSign(rec.Signs.Dest)
		if err != nil {
			return nil, malformed("edge %d: %v", rec.ID, err)
		}
		link, err := ParseLinkType(rec.LinkType)
		if err != nil {
			return nil, malformed("edge %d: %v", rec.ID, err)
		}
		if err := validation.ValidateFinite("value", rec.Value); err != nil {
			return nil, malformed("edge %d: %v", rec.ID, err)
		}
		if rec.Reaction != nil {
			if err := rec.Reaction.validate(); err != nil {
				return nil, malformed("edge %d: %v", rec.ID, err)
			}
		}
		b.edges[rec.ID] = &Edge{
			ID:       rec.ID,
			Active:   rec.Active,
			Src:      rec.Src,
			Dest:     rec.Dest,
			Signs:    Signs{Source: src, Dest: dest},
			Value:    rec.Value,
			LinkType: link,
			Reaction: rec.Reaction.Clone(),
		}
	}

	if err := b.checkLinks(); err != nil {
		return nil, err
	}

	for _, p := range doc.Parameters {
		if _, dup := b.parameters[p.Name]; dup {
			return nil, malformed("parameter %q repeated", p.Name)
		}
		if err := validation.ValidateParameter(p.Name, p.Value); err != nil {
			return nil, malformed("parameter %q: %v", p.Name, err)
		}
		b.parameters[p.Name] = p
	}

	if haveID {
		b.nextID = maxID + 1
	}
	return b, nil
}

// checkLinks verifies that every edge id appears exactly once in its source's
// OutputLinks and once in its destination's InputLinks, and nowhere else.
func (b *BioNet) checkLinks() error {
	outRefs := make(map[uint64]int)
	inRefs := make(map[uint64]int)
	for _, n := range b.nodes {
		for _, eid := range n.OutputLinks {
			e, ok := b.edges[eid]
			if !ok {
				return malformed("node %d: output link to unknown edge %d", n.ID, eid)
			}
			if e.Src != n.ID {
				return malformed("node %d: output link %d belongs to source %d", n.ID, eid, e.Src)
			}
			outRefs[eid]++
		}
		for _, eid := range n.InputLinks {
			e, ok := b.edges[eid]
			if !ok {
				return malformed("node %d: input link to unknown edge %d", n.ID, eid)
			}
			if e.Dest != n.ID {
				return malformed("node %d: input link %d belongs to destination %d", n.ID, eid, e.Dest)
			}
			inRefs[eid]++
		}
	}
	for id := range b.edges {
		if outRefs[id] != 1 || inRefs[id] != 1 {
			return malformed("edge %d: listed %d times as output and %d times as input", id, outRefs[id], inRefs[id])
		}
	}
	return nil
}

// Marshal encodes the network in the given format
func (b *BioNet) Marshal(format Format) ([]byte, error) {
	if !utf8.ValidString(b.name) {
		return nil, fmt.Errorf("network name %q is not valid UTF-8", b.name)
	}
	doc := b.toDocument()
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatSnappyJSON:
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		return snappy.Encode(nil, data), nil
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
}

// Unmarshal decodes a network. Any decoding or validation failure wraps
// ErrMalformed.
func Unmarshal(data []byte, format Format, opts ...Option) (*BioNet, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := decodeJSON(data, &doc); err != nil {
			return nil, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case FormatSnappyJSON:
		raw, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if err := decodeJSON(raw, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %s", ErrMalformed, format)
	}
	return fromDocument(doc, opts...)
}

func decodeJSON(data []byte, doc *document) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after document", ErrMalformed)
	}
	return nil
}

// Encode writes the network to w
func (b *BioNet) Encode(w io.Writer, format Format) error {
	data, err := b.Marshal(format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode reads a whole network from r
func Decode(r io.Reader, format Format, opts ...Option) (*BioNet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return Unmarshal(data, format, opts...)
}
