// Package values reads a chart's values document and flattens it into dotted
// key paths in document order.
//
// Every mapping key is recorded, including keys whose value is itself a
// mapping, so that both `image` and `image.tag` can be looked up. Sequences are
// recorded at their own path; mapping elements inside a sequence are flattened
// further as `path[i].key`. Each entry carries a single-line display form of
// its default value suitable for a Markdown table cell.
package values

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/spf13/afero"

	"github.com/saltyorg/chartpedia/internal/types"
)

var (
	// ErrInvalidYAML is returned when the values document cannot be parsed.
	ErrInvalidYAML = errors.New("invalid YAML")

	// ErrNotMapping is returned when the document root is not a mapping.
	ErrNotMapping = errors.New("values document root must be a mapping")
)

// Entry is one flattened value.
type Entry struct {
	Path     string     // Dotted key path (e.g., "image.tag")
	Kind     types.Kind // YAML type of the value
	Display  string     // Default value rendered on one line
	Children int        // Number of direct keys for objects, items for arrays
	Line     int        // Line number of the key in the source file
}

// IsLeaf reports whether the entry has no nested keys of its own.
func (e Entry) IsLeaf() bool {
	return e.Kind != types.Object || e.Children == 0
}

// Values is the ordered set of flattened entries.
type Values struct {
	entries []Entry
	index   map[string]int
}

// Entries returns all entries in document order.
func (v *Values) Entries() []Entry {
	return v.entries
}

// Len returns the number of entries.
func (v *Values) Len() int {
	return len(v.entries)
}

// Get returns the entry at path.
func (v *Values) Get(path string) (Entry, bool) {
	i, ok := v.index[path]
	if !ok {
		return Entry{}, false
	}
	return v.entries[i], true
}

// Has reports whether path exists in the document.
func (v *Values) Has(path string) bool {
	_, ok := v.index[path]
	return ok
}

// Leaves returns entries that have no nested keys, in document order.
func (v *Values) Leaves() []Entry {
	var out []Entry
	for _, e := range v.entries {
		if e.IsLeaf() {
			out = append(out, e)
		}
	}
	return out
}

func (v *Values) add(e Entry) {
	if _, ok := v.index[e.Path]; ok {
		return
	}
	v.index[e.Path] = len(v.entries)
	v.entries = append(v.entries, e)
}

// ReadFile reads and flattens the values file at path.
func ReadFile(fsys afero.Fs, path string) (*Values, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading values file: %w", err)
	}

	vals, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return vals, nil
}

// Parse flattens a values document held in memory. Only the first YAML
// document is used.
func Parse(data []byte) (*Values, error) {
	vals := &Values{
		entries: []Entry{},
		index:   make(map[string]int),
	}

	if strings.TrimSpace(string(data)) == "" {
		return vals, nil
	}

	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return vals, nil
	}

	body := file.Docs[0].Body
	w := &walker{vals: vals, anchors: buildAnchorMap(body)}

	root := unwrapNode(w.resolve(body))
	switch n := root.(type) {
	case nil, *ast.NullNode, *ast.CommentGroupNode:
		return vals, nil
	case *ast.MappingNode:
		w.walkMapping(n.Values, "")
	case *ast.MappingValueNode:
		w.walkMapping([]*ast.MappingValueNode{n}, "")
	default:
		return nil, fmt.Errorf("%w, got %s", ErrNotMapping, n.Type())
	}

	return vals, nil
}

type walker struct {
	vals    *Values
	anchors map[string]ast.Node
}

// walkMapping records every key of a mapping and descends into its values.
func (w *walker) walkMapping(pairs []*ast.MappingValueNode, prefix string) {
	for _, mvn := range pairs {
		if _, ok := mvn.Key.(*ast.MergeKeyNode); ok {
			w.walkMerge(mvn.Value, prefix)
			continue
		}

		path := keyName(mvn.Key)
		if prefix != "" {
			path = prefix + "." + path
		}
		w.walkValue(mvn.Value, path, mvn.Key.GetToken().Position.Line)
	}
}

// walkMerge inlines the mapping(s) referenced by a `<<` key.
func (w *walker) walkMerge(node ast.Node, prefix string) {
	switch n := unwrapNode(w.resolve(node)).(type) {
	case *ast.MappingNode:
		w.walkMapping(n.Values, prefix)
	case *ast.MappingValueNode:
		w.walkMapping([]*ast.MappingValueNode{n}, prefix)
	case *ast.SequenceNode:
		for _, item := range n.Values {
			w.walkMerge(item, prefix)
		}
	}
}

func (w *walker) walkValue(node ast.Node, path string, line int) {
	node = unwrapNode(w.resolve(node))

	entry := Entry{
		Path:    path,
		Kind:    kindOf(node),
		Display: w.display(node),
		Line:    line,
	}

	switch n := node.(type) {
	case *ast.MappingNode:
		entry.Children = len(n.Values)
		w.vals.add(entry)
		w.walkMapping(n.Values, path)
	case *ast.MappingValueNode:
		entry.Children = 1
		w.vals.add(entry)
		w.walkMapping([]*ast.MappingValueNode{n}, path)
	case *ast.SequenceNode:
		entry.Children = len(n.Values)
		w.vals.add(entry)
		for i, item := range n.Values {
			item = unwrapNode(w.resolve(item))
			itemPath := path + "[" + strconv.Itoa(i) + "]"
			switch m := item.(type) {
			case *ast.MappingNode:
				w.walkMapping(m.Values, itemPath)
			case *ast.MappingValueNode:
				w.walkMapping([]*ast.MappingValueNode{m}, itemPath)
			}
		}
	default:
		w.vals.add(entry)
	}
}

// display renders node as a single-line default value.
func (w *walker) display(node ast.Node) string {
	switch n := node.(type) {
	case nil, *ast.NullNode:
		return types.Placeholder(types.Null)
	case *ast.StringNode:
		if n.Value == "" {
			return types.Placeholder(types.String)
		}
		return scalarDisplay(n.Value)
	case *ast.LiteralNode:
		if n.Value == nil || n.Value.Value == "" {
			return types.Placeholder(types.String)
		}
		return scalarDisplay(strings.TrimRight(n.Value.Value, "\n"))
	case *ast.MappingNode:
		if len(n.Values) == 0 {
			return types.Placeholder(types.Object)
		}
		return w.toJSON(n)
	case *ast.MappingValueNode:
		return w.toJSON(n)
	case *ast.SequenceNode:
		if len(n.Values) == 0 {
			return types.Placeholder(types.Array)
		}
		return w.toJSON(n)
	default:
		return n.GetToken().Value
	}
}

// scalarDisplay keeps a string on one line; multi-line text is shown as a
// JSON string with escaped newlines.
func scalarDisplay(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	var sb strings.Builder
	writeJSONString(&sb, s)
	return sb.String()
}

// toJSON renders a node as compact JSON, keeping mapping key order.
func (w *walker) toJSON(node ast.Node) string {
	var sb strings.Builder
	w.writeJSON(&sb, node)
	return sb.String()
}

func (w *walker) writeJSON(sb *strings.Builder, node ast.Node) {
	node = unwrapNode(w.resolve(node))

	switch n := node.(type) {
	case nil, *ast.NullNode:
		sb.WriteString("null")
	case *ast.BoolNode, *ast.IntegerNode, *ast.FloatNode:
		sb.WriteString(n.GetToken().Value)
	case *ast.StringNode:
		writeJSONString(sb, n.Value)
	case *ast.LiteralNode:
		if n.Value == nil {
			writeJSONString(sb, "")
		} else {
			writeJSONString(sb, n.Value.Value)
		}
	case *ast.MappingNode:
		w.writeJSONObject(sb, n.Values)
	case *ast.MappingValueNode:
		w.writeJSONObject(sb, []*ast.MappingValueNode{n})
	case *ast.SequenceNode:
		sb.WriteByte('[')
		for i, item := range n.Values {
			if i > 0 {
				sb.WriteByte(',')
			}
			w.writeJSON(sb, item)
		}
		sb.WriteByte(']')
	default:
		writeJSONString(sb, n.GetToken().Value)
	}
}

func (w *walker) writeJSONObject(sb *strings.Builder, pairs []*ast.MappingValueNode) {
	sb.WriteByte('{')
	for i, mvn := range pairs {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeJSONString(sb, keyName(mvn.Key))
		sb.WriteByte(':')
		w.writeJSON(sb, mvn.Value)
	}
	sb.WriteByte('}')
}

func writeJSONString(sb *strings.Builder, s string) {
	b, err := json.Marshal(s)
	if err != nil {
		sb.WriteString(strconv.Quote(s))
		return
	}
	sb.Write(b)
}

// resolve replaces an alias with the node its anchor points to.
func (w *walker) resolve(node ast.Node) ast.Node {
	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}
	if resolved, found := w.anchors[alias.Value.String()]; found {
		return resolved
	}
	return nil
}

// kindOf returns the value kind of an unwrapped node.
func kindOf(node ast.Node) types.Kind {
	switch node.(type) {
	case *ast.BoolNode:
		return types.Boolean
	case *ast.IntegerNode, *ast.FloatNode, *ast.InfinityNode, *ast.NanNode:
		return types.Number
	case *ast.StringNode, *ast.LiteralNode:
		return types.String
	case *ast.SequenceNode:
		return types.Array
	case *ast.MappingNode, *ast.MappingValueNode:
		return types.Object
	default:
		return types.Null
	}
}

// keyName returns a mapping key without surrounding quotes.
func keyName(key ast.MapKeyNode) string {
	if s, ok := unwrapNode(key).(*ast.StringNode); ok {
		return s.Value
	}
	return key.String()
}

// unwrapNode resolves TagNode and AnchorNode wrappers to the underlying
// value node.
func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

// buildAnchorMap walks the AST and collects all anchor definitions.
func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)
	ast.Walk(&anchorVisitor{anchors: anchors}, node)
	return anchors
}

type anchorVisitor struct {
	anchors map[string]ast.Node
}

// Visit implements the [ast.Visitor] interface.
func (v *anchorVisitor) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		v.anchors[anchor.Name.String()] = anchor.Value
	}
	return v
}
