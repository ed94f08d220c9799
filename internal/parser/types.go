package parser

import "strings"

// ValueID addresses a Value inside Metadata.Values.
type ValueID int

// SectionID addresses a Section inside Metadata.Sections.
type SectionID int

// NoSection marks a value that was declared before any section tag.
const NoSection SectionID = -1

// Value represents one documented chart parameter.
type Value struct {
	ID             ValueID   // Index in Metadata.Values
	Name           string    // Dotted key path (e.g., "image.tag")
	Description    string    // Free text after the name and modifiers
	Modifiers      []string  // Bracketed tags in declaration order (e.g., "array", "nullable")
	ShouldValidate bool      // Whether the value must exist in the values file
	RenderInReadme bool      // Whether the value appears in the parameters table
	Section        SectionID // Owning section, NoSection when flat-only
	Line           int       // Line number in source file
}

// Skip marks the value as neither validated nor rendered.
func (v *Value) Skip() {
	v.ShouldValidate = false
	v.RenderInReadme = false
}

// Extra marks the value as rendered but not validated.
func (v *Value) Extra() {
	v.ShouldValidate = false
	v.RenderInReadme = true
}

// HasModifier reports whether mod was listed verbatim in the modifiers.
func (v *Value) HasModifier(mod string) bool {
	for _, m := range v.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// ModifierValue returns the text after prefix for the first modifier that
// starts with it (e.g., "default:").
func (v *Value) ModifierValue(prefix string) (string, bool) {
	for _, m := range v.Modifiers {
		if rest, ok := strings.CutPrefix(m, prefix); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// Section represents a named group of values.
type Section struct {
	ID               SectionID // Index in Metadata.Sections
	Name             string    // Title from the section tag
	DescriptionLines []string  // Raw description lines in order
	ValueIDs         []ValueID // Values declared under this section, in order
	Line             int       // Line number in source file
}

// Description returns the description lines joined with newlines.
func (s *Section) Description() string {
	return strings.Join(s.DescriptionLines, "\n")
}

// Metadata contains everything parsed from a values file.
// Values is both the arena and the flat list: IDs are indices and the slice
// order is first-seen order.
type Metadata struct {
	Sections []Section
	Values   []Value
}

// NewMetadata returns empty metadata.
func NewMetadata() *Metadata {
	return &Metadata{
		Sections: []Section{},
		Values:   []Value{},
	}
}

// AddSection appends a new section and returns its ID.
func (m *Metadata) AddSection(name string, line int) SectionID {
	id := SectionID(len(m.Sections))
	m.Sections = append(m.Sections, Section{
		ID:       id,
		Name:     name,
		ValueIDs: []ValueID{},
		Line:     line,
	})
	return id
}

// AddValue stores v in the arena, registers it with its section (if any) and
// returns its ID.
func (m *Metadata) AddValue(v Value) ValueID {
	id := ValueID(len(m.Values))
	v.ID = id
	if v.Section < 0 || int(v.Section) >= len(m.Sections) {
		v.Section = NoSection
	}
	m.Values = append(m.Values, v)
	if v.Section != NoSection {
		s := &m.Sections[v.Section]
		s.ValueIDs = append(s.ValueIDs, id)
	}
	return id
}

// Value returns the value with the given ID.
func (m *Metadata) Value(id ValueID) *Value {
	return &m.Values[id]
}

// Section returns the section with the given ID.
func (m *Metadata) Section(id SectionID) *Section {
	return &m.Sections[id]
}

// SectionValues returns the values of a section in declaration order.
func (m *Metadata) SectionValues(id SectionID) []*Value {
	s := &m.Sections[id]
	out := make([]*Value, 0, len(s.ValueIDs))
	for _, vid := range s.ValueIDs {
		out = append(out, &m.Values[vid])
	}
	return out
}

// Unsectioned returns values declared before any section tag.
func (m *Metadata) Unsectioned() []*Value {
	var out []*Value
	for i := range m.Values {
		if m.Values[i].Section == NoSection {
			out = append(out, &m.Values[i])
		}
	}
	return out
}

// Lookup returns every value declared with name, in declaration order.
func (m *Metadata) Lookup(name string) []*Value {
	var out []*Value
	for i := range m.Values {
		if m.Values[i].Name == name {
			out = append(out, &m.Values[i])
		}
	}
	return out
}

// Duplicates returns names declared more than once, in first-seen order.
func (m *Metadata) Duplicates() []string {
	counts := make(map[string]int, len(m.Values))
	var order []string
	for _, v := range m.Values {
		if counts[v.Name] == 0 {
			order = append(order, v.Name)
		}
		counts[v.Name]++
	}

	var dups []string
	for _, name := range order {
		if counts[name] > 1 {
			dups = append(dups, name)
		}
	}
	return dups
}

// ParserState tracks the current parsing context.
type ParserState struct {
	CurrentSection SectionID // NoSection until the first section tag
	Describing     bool      // True between description start and end tags
}

// HasSection reports whether a section is open.
func (s ParserState) HasSection() bool {
	return s.CurrentSection != NoSection
}
