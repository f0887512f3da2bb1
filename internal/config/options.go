package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// PadPolicy controls whitespace inside or before a parenthesis.
type PadPolicy string

// Pad policies.
const (
	NoSpace PadPolicy = "nospace"
	Space   PadPolicy = "space"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PadPolicy) UnmarshalText(b []byte) error {
	switch v := PadPolicy(strings.ToLower(strings.TrimSpace(string(b)))); v {
	case NoSpace, Space:
		*p = v
		return nil
	}
	return fmt.Errorf("want %q or %q", NoSpace, Space)
}

// RightCurlyPolicy controls where a closing brace goes.
type RightCurlyPolicy string

// Right curly policies.
const (
	Same  RightCurlyPolicy = "same"
	Alone RightCurlyPolicy = "alone"
	// AloneOrSingleline keeps single-line blocks intact and otherwise
	// behaves like Alone.
	AloneOrSingleline RightCurlyPolicy = "alone_or_singleline"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *RightCurlyPolicy) UnmarshalText(b []byte) error {
	switch v := RightCurlyPolicy(strings.ToLower(strings.TrimSpace(string(b)))); v {
	case Same, Alone, AloneOrSingleline:
		*p = v
		return nil
	}
	return fmt.Errorf("want one of %q, %q, %q", Same, Alone, AloneOrSingleline)
}

// BlockPolicy controls what counts as an empty block.
type BlockPolicy string

// Block policies.
const (
	// Statement treats a block without statements as empty, even if it
	// holds comments.
	Statement BlockPolicy = "statement"
	// Text treats a block as empty only when it holds nothing but
	// whitespace.
	Text BlockPolicy = "text"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *BlockPolicy) UnmarshalText(b []byte) error {
	switch v := BlockPolicy(strings.ToLower(strings.TrimSpace(string(b)))); v {
	case Statement, Text:
		*p = v
		return nil
	}
	return fmt.Errorf("want %q or %q", Statement, Text)
}

// knownTokens is the vocabulary of token names accepted in a tokens
// property.
var knownTokens = map[string]bool{}

func init() {
	for _, t := range []string{
		"ANNOTATION_DEF", "ARRAY_DECLARATOR", "ARRAY_INIT", "AT", "BNOT",
		"CLASS_DEF", "COMMA", "CTOR_DEF", "DEC", "DOT", "ELLIPSIS",
		"ENUM_CONSTANT_DEF", "ENUM_DEF", "GENERIC_END", "GENERIC_START",
		"INC", "INDEX_OP", "INSTANCE_INIT", "INTERFACE_DEF", "LAMBDA",
		"LITERAL_CASE", "LITERAL_CATCH", "LITERAL_DEFAULT", "LITERAL_DO",
		"LITERAL_ELSE", "LITERAL_FINALLY", "LITERAL_FOR", "LITERAL_IF",
		"LITERAL_NEW", "LITERAL_SWITCH", "LITERAL_SYNCHRONIZED",
		"LITERAL_TRY", "LITERAL_WHILE", "LNOT", "METHOD_CALL", "METHOD_DEF",
		"METHOD_REF", "PARAMETER_DEF", "POST_DEC", "POST_INC", "SEMI",
		"STATIC_INIT", "SUPER_CTOR_CALL", "TYPECAST", "UNARY_MINUS",
		"UNARY_PLUS", "VARIABLE_DEF",
	} {
		knownTokens[t] = true
	}
}

// TokenSet is a set of token names parsed from a comma-separated list.
// It is a struct rather than a map so that decoding a property replaces
// the default set instead of merging into it.
type TokenSet struct {
	names map[string]bool
}

// Tokens builds a TokenSet from names.
func Tokens(names ...string) TokenSet {
	s := TokenSet{names: make(map[string]bool, len(names))}
	for _, n := range names {
		s.names[n] = true
	}
	return s
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *TokenSet) UnmarshalText(b []byte) error {
	out := Tokens()
	for _, f := range strings.Split(string(b), ",") {
		f = strings.ToUpper(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if !knownTokens[f] {
			return fmt.Errorf("unknown token %s", f)
		}
		out.names[f] = true
	}
	*s = out
	return nil
}

// Has reports whether the set contains token.
func (s TokenSet) Has(token string) bool { return s.names[token] }

// Names returns the tokens in sorted order.
func (s TokenSet) Names() []string {
	names := make([]string, 0, len(s.names))
	for t := range s.names {
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}

// Check returns an error naming the first token of s that allowed does not
// contain.
func (s TokenSet) Check(allowed TokenSet) error {
	for _, t := range s.Names() {
		if !allowed.Has(t) {
			return fmt.Errorf("token %s is not supported", t)
		}
	}
	return nil
}

// String returns the sorted comma-separated tokens.
func (s TokenSet) String() string {
	return strings.Join(s.Names(), ",")
}

// Pattern is a regular expression property.
type Pattern struct {
	*regexp.Regexp
}

// MustPattern compiles expr and panics on error.
func MustPattern(expr string) Pattern {
	return Pattern{regexp.MustCompile(expr)}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pattern) UnmarshalText(b []byte) error {
	re, err := regexp.Compile(string(b))
	if err != nil {
		return err
	}
	p.Regexp = re
	return nil
}

// MatchString reports whether s matches. An unset pattern matches nothing.
func (p Pattern) MatchString(s string) bool {
	return p.Regexp != nil && p.Regexp.MatchString(s)
}

// Decode overlays the properties of m onto opts, which must be a pointer to
// a struct whose fields carry prop tags. Fields keep their current values
// unless a property sets them, so callers pass opts pre-filled with
// defaults. Properties are decoded one at a time so that a failure names
// the offending property. Properties opts has no field for are ignored.
func Decode(m Module, opts any) error {
	props := make([]string, 0, len(m.Props))
	for p := range m.Props {
		props = append(props, p)
	}
	sort.Strings(props)

	for _, p := range props {
		v := m.Props[p]
		k := koanf.New("/")
		if err := k.Load(confmap.Provider(map[string]any{p: v}, "/"), nil); err != nil {
			return &Error{Module: m.Name, Property: p, Value: v, Err: err}
		}
		if err := k.UnmarshalWithConf("", opts, koanf.UnmarshalConf{Tag: "prop"}); err != nil {
			return &Error{Module: m.Name, Property: p, Value: v, Err: err}
		}
	}
	return nil
}

// DecodeModule runs Decode for the module called name and, when tokens is
// not nil, checks the selected tokens against allowed.
func DecodeModule(name string, m Module, opts any, tokens *TokenSet, allowed TokenSet) error {
	m.Name = name
	if err := Decode(m, opts); err != nil {
		return err
	}
	if tokens == nil {
		return nil
	}
	if err := tokens.Check(allowed); err != nil {
		return &Error{Module: name, Property: "tokens", Value: tokens.String(), Err: err}
	}
	return nil
}
