// Package tree builds grid containers from HTML documents and YAML
// snapshots, and lays them out.
//
// Styles are only read from the style attribute: there is no style
// sheet nor selector matching.
package tree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/gridlayout/css/validation"
	"github.com/benoitkugler/gridlayout/logger"
	"github.com/benoitkugler/gridlayout/text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a node of the document, with its computed style.
type Element struct {
	Tag   string // empty for text runs
	ID    string
	Style validation.Style
	// Declarations is the source of Style.
	Declarations string

	// Text is the content of a text run.
	Text string
	// Intrinsic, if not nil, replaces the content of the element
	// by a box with fixed intrinsic sizes.
	Intrinsic *Intrinsic

	Children []*Element
}

// Intrinsic are the sizes of an opaque content, like a replaced element.
// The height does not depend on the width.
type Intrinsic struct {
	MinWidth float64 `yaml:"min_width"`
	MaxWidth float64 `yaml:"max_width"`
	Height   float64 `yaml:"height"`
	// Baseline is the distance from the top edge to the baseline,
	// or 0 to use the bottom edge.
	Baseline float64 `yaml:"baseline,omitempty"`
}

// IsText returns true for text runs.
func (e *Element) IsText() bool { return e.Tag == "" }

// Name identifies the element in outputs: its id, or its tag.
func (e *Element) Name() string {
	switch {
	case e.ID != "":
		return e.ID
	case e.IsText():
		return "#text"
	default:
		return e.Tag
	}
}

// isCollapsible returns true for text runs made of white space only,
// which don't generate boxes in grid containers.
func (e *Element) isCollapsible() bool {
	return e.IsText() && strings.TrimLeft(e.Text, " \t\n\r\f") == ""
}

// Document is a tree of styled elements.
type Document struct {
	Root *Element
	// Name is the name of the source, used in outputs.
	Name string

	content *flow // built on the first layout
	metrics text.Metrics
}

// elements whose content is not rendered
var skippedElements = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Template: true,
	atom.Noscript: true,
	atom.Title:    true,
}

// ParseHTML parses an HTML document. The body element is the root of
// the returned document; styles are read from the style attributes.
func ParseHTML(r io.Reader, name string) (*Document, error) {
	logger.ProgressLogger.Debugf("parsing HTML %s", name)
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("invalid html input: %w", err)
	}
	body := findBody(root)
	if body == nil {
		return nil, fmt.Errorf("invalid html input: missing body")
	}
	return &Document{Root: newElement(body, validation.InitialStyle()), Name: name}, nil
}

func findBody(node *html.Node) *html.Node {
	if node.Type == html.ElementNode && node.DataAtom == atom.Body {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if body := findBody(child); body != nil {
			return body
		}
	}
	return nil
}

func getAttr(node *html.Node, key string) string {
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func newElement(node *html.Node, parent validation.Style) *Element {
	declarations := getAttr(node, "style")
	style := validation.ParseStyleAttribute(declarations, parent)
	out := &Element{Tag: node.Data, ID: getAttr(node, "id"), Style: style, Declarations: declarations}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			if skippedElements[child.DataAtom] {
				continue
			}
			if child.DataAtom == atom.Br {
				out.appendText("\n", style)
				continue
			}
			element := newElement(child, style)
			if element.Style.Display == validation.DisplayNone {
				continue
			}
			out.Children = append(out.Children, element)
		case html.TextNode:
			out.appendText(child.Data, style)
		}
	}
	return out
}

// appendText merges adjacent text runs.
func (e *Element) appendText(text string, parent validation.Style) {
	if n := len(e.Children); n != 0 && e.Children[n-1].IsText() {
		e.Children[n-1].Text += text
		return
	}
	e.Children = append(e.Children, &Element{Text: text, Style: validation.ComputeStyle(nil, parent)})
}

// LoadFile reads an HTML document (.html or .htm) or a YAML
// snapshot (.yaml or .yml).
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".html", ".htm":
		return ParseHTML(f, path)
	case ".yaml", ".yml":
		return ParseSnapshot(f, path)
	default:
		return nil, fmt.Errorf("unsupported input extension %q for %s", ext, path)
	}
}
