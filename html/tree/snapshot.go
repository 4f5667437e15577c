package tree

import (
	"bytes"
	"fmt"
	"io"

	"github.com/benoitkugler/gridlayout/css/validation"
	"github.com/benoitkugler/gridlayout/logger"
	"gopkg.in/yaml.v3"
)

// Snapshot is the YAML description of a tree of boxes, an alternative to
// HTML input. For instance:
//
//	name: page
//	style: "grid-template-columns: 100px 1fr; gap: 10px"
//	items:
//	  - name: side
//	    style: "grid-row: span 2"
//	    text: "Some text"
//	  - name: logo
//	    intrinsic: {min_width: 20, max_width: 40, height: 20}
//
// The root of a snapshot is always a grid container.
type Snapshot struct {
	Name  string `yaml:"name,omitempty"`
	Style string `yaml:"style,omitempty"` // CSS declarations
	Text  string `yaml:"text,omitempty"`

	Intrinsic *Intrinsic `yaml:"intrinsic,omitempty"`

	Items []Snapshot `yaml:"items,omitempty"`
}

// ParseSnapshot reads a YAML snapshot. Unknown fields are rejected.
func ParseSnapshot(r io.Reader, name string) (*Document, error) {
	logger.ProgressLogger.Debugf("parsing snapshot %s", name)
	var snapshot Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", name, err)
	}
	root := snapshot.element(validation.InitialStyle())
	if !root.Style.Display.IsGrid() {
		root.Style.Display = validation.DisplayGrid
	}
	return &Document{Root: root, Name: name}, nil
}

func (s Snapshot) element(parent validation.Style) *Element {
	style := validation.ParseStyleAttribute(s.Style, parent)
	out := &Element{Tag: "div", ID: s.Name, Style: style, Declarations: s.Style, Intrinsic: s.Intrinsic}
	if s.Text != "" {
		out.appendText(s.Text, style)
	}
	for _, item := range s.Items {
		child := item.element(style)
		if child.Style.Display == validation.DisplayNone {
			continue
		}
		out.Children = append(out.Children, child)
	}
	return out
}

// NewSnapshot returns the snapshot of e. Text runs mixed with elements
// are converted to anonymous items.
func NewSnapshot(e *Element) Snapshot {
	out := Snapshot{Name: e.ID, Style: e.Declarations, Intrinsic: e.Intrinsic}
	if len(e.Children) == 1 && e.Children[0].IsText() {
		out.Text = e.Children[0].Text
		return out
	}
	for _, child := range e.Children {
		if child.isCollapsible() {
			continue
		}
		if child.IsText() {
			out.Items = append(out.Items, Snapshot{Text: child.Text})
		} else {
			out.Items = append(out.Items, NewSnapshot(child))
		}
	}
	return out
}

// MarshalSnapshot returns the YAML snapshot of the document root.
func (d *Document) MarshalSnapshot() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(NewSnapshot(d.Root)); err != nil {
		return nil, fmt.Errorf("encoding snapshot %s: %w", d.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding snapshot %s: %w", d.Name, err)
	}
	return buf.Bytes(), nil
}
