package parser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/saltyorg/chartpedia/internal/config"
)

// ErrInvalidConfig is returned by New when the configuration cannot produce
// the annotation patterns.
var ErrInvalidConfig = config.ErrInvalidConfig

// maxLineSize bounds a single values file line.
const maxLineSize = 1024 * 1024

// Parser handles parsing of annotated chart values files.
type Parser struct {
	paramRe      *regexp.Regexp
	skipRe       *regexp.Regexp
	extraRe      *regexp.Regexp
	sectionRe    *regexp.Regexp
	descrStartRe *regexp.Regexp
	descrEndRe   *regexp.Regexp
	commentRe    *regexp.Regexp
}

// New builds a Parser whose patterns are derived from cfg.
func New(cfg *config.Config) (*Parser, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: configuration is nil", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prefix := `^\s*` + regexp.QuoteMeta(cfg.Comments.Format) + `\s*`
	tag := func(literal, payload string) (*regexp.Regexp, error) {
		re, err := regexp.Compile(prefix + regexp.QuoteMeta(literal) + payload)
		if err != nil {
			return nil, fmt.Errorf("%w: tag %q: %w", ErrInvalidConfig, literal, err)
		}
		return re, nil
	}

	// name, optional [modifiers], description
	const valuePayload = `\s+(\S+)\s*(?:\[(.*?)\])?\s*(.*?)\s*$`

	p := &Parser{}
	var err error
	if p.paramRe, err = tag(cfg.Tags.Param, valuePayload); err != nil {
		return nil, err
	}
	if p.skipRe, err = tag(cfg.Tags.Skip, `\s+(\S+)(?:\s.*)?$`); err != nil {
		return nil, err
	}
	if p.extraRe, err = tag(cfg.Tags.Extra, valuePayload); err != nil {
		return nil, err
	}
	if p.sectionRe, err = tag(cfg.Tags.Section, `(?:\s+(.*?))?\s*$`); err != nil {
		return nil, err
	}
	if p.descrStartRe, err = tag(cfg.Tags.DescriptionStart, `(?:\s+(.*?))?\s*$`); err != nil {
		return nil, err
	}
	if p.descrEndRe, err = tag(cfg.Tags.DescriptionEnd, `(?:\s.*)?$`); err != nil {
		return nil, err
	}
	if p.commentRe, err = regexp.Compile(`^\s*` + regexp.QuoteMeta(cfg.Comments.Format) + `[ \t]?(.*)$`); err != nil {
		return nil, fmt.Errorf("%w: comment prefix: %w", ErrInvalidConfig, err)
	}

	return p, nil
}

// ParseFile parses the values file at path.
func (p *Parser) ParseFile(fsys afero.Fs, path string) (*Metadata, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening values file: %w", err)
	}
	defer file.Close()

	md, err := p.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return md, nil
}

// ParseString parses values text held in memory.
func (p *Parser) ParseString(text string) (*Metadata, error) {
	return p.Parse(strings.NewReader(text))
}

// Parse reads annotated values text line by line and returns its metadata.
func (p *Parser) Parse(r io.Reader) (*Metadata, error) {
	md := NewMetadata()
	state := ParserState{CurrentSection: NoSection}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		state = p.parseLine(md, state, scanner.Text(), lineNum)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", lineNum+1, err)
	}

	return md, nil
}

// parseLine applies a single line to md and returns the next state.
func (p *Parser) parseLine(md *Metadata, state ParserState, line string, lineNum int) ParserState {
	// Value family: param, then skip, then extra
	if v, ok := p.matchValue(line); ok {
		v.Section = state.CurrentSection
		v.Line = lineNum
		md.AddValue(v)
		return state
	}

	if m := p.sectionRe.FindStringSubmatch(line); m != nil {
		state.CurrentSection = md.AddSection(m[1], lineNum)
		state.Describing = false
		return state
	}

	if p.descrEndRe.MatchString(line) {
		if state.Describing && state.HasSection() {
			state.Describing = false
		}
		return state
	}

	if m := p.descrStartRe.FindStringSubmatch(line); m != nil {
		if state.HasSection() && !state.Describing {
			state.Describing = true
			if m[1] != "" {
				s := md.Section(state.CurrentSection)
				s.DescriptionLines = append(s.DescriptionLines, m[1])
			}
		}
		return state
	}

	if state.Describing && state.HasSection() {
		if m := p.commentRe.FindStringSubmatch(line); m != nil {
			s := md.Section(state.CurrentSection)
			s.DescriptionLines = append(s.DescriptionLines, strings.TrimRight(m[1], " \t"))
		}
	}

	return state
}

// matchValue recognizes param, skip and extra lines.
func (p *Parser) matchValue(line string) (Value, bool) {
	if m := p.paramRe.FindStringSubmatch(line); m != nil {
		return Value{
			Name:           m[1],
			Modifiers:      splitModifiers(m[2]),
			Description:    m[3],
			ShouldValidate: true,
			RenderInReadme: true,
		}, true
	}

	if m := p.skipRe.FindStringSubmatch(line); m != nil {
		v := Value{Name: m[1]}
		v.Skip()
		return v, true
	}

	if m := p.extraRe.FindStringSubmatch(line); m != nil {
		v := Value{
			Name:        m[1],
			Modifiers:   splitModifiers(m[2]),
			Description: m[3],
		}
		v.Extra()
		return v, true
	}

	return Value{}, false
}

// splitModifiers turns "array, nullable" into its trimmed, non-empty parts.
func splitModifiers(raw string) []string {
	mods := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			mods = append(mods, part)
		}
	}
	return mods
}
