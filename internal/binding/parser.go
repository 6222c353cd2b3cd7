// Package binding reads the editor metadata of shader declarations: semantic
// binding names, widget hints, defaults, texture registers and filters.
package binding

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the storage qualifier of a declaration.
type Kind string

const (
	Uniform   Kind = "uniform"
	Attribute Kind = "attribute"
	Varying   Kind = "varying"
	Constant  Kind = "const"
)

// Entry is one declaration.
type Entry struct {
	Kind Kind   `yaml:"kind" json:"kind"`
	Type string `yaml:"type" json:"type"`
	Name string `yaml:"name" json:"name"`
	// Value is the initializer of constants.
	Value      string     `yaml:"value,omitempty" json:"value,omitempty"`
	Annotation Annotation `yaml:"annotation,omitempty" json:"annotation,omitempty"`
}

// Key is the binding name when present, else the declared name.
func (e Entry) Key() string {
	if e.Annotation.Binding != "" {
		return e.Annotation.Binding
	}
	return e.Name
}

// Member is a field of a struct declaration.
type Member struct {
	Type string `yaml:"type" json:"type"`
	Name string `yaml:"name" json:"name"`
}

// Reflection is everything Parse found, in declaration order.
type Reflection struct {
	Uniforms   []Entry             `yaml:"uniforms" json:"uniforms"`
	Attributes []Entry             `yaml:"attributes" json:"attributes"`
	Varyings   []Entry             `yaml:"varyings" json:"varyings"`
	Constants  []Entry             `yaml:"constants" json:"constants"`
	Structs    map[string][]Member `yaml:"structs" json:"structs"`
}

var (
	regComment = regexp.MustCompile(`^//(.*)$`)
	regDecl    = regexp.MustCompile(`^(uniform|attribute|varying)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+(?:\[\w+\])?)\s*;`)
	regConst   = regexp.MustCompile(`^const\s+(\w+)\s+(\w+)\s*=\s*(.+?)\s*;`)
	regStruct  = regexp.MustCompile(`^struct\s+(\w+)`)
	regMember  = regexp.MustCompile(`(\w+)\s+(\w+)\s*$`)
	regArray   = regexp.MustCompile(`^(\w+)\[(\w+)\]$`)
)

// Parse reads a shader header. Consecutive comment lines directly above a
// declaration form its annotation block; a blank line or any other code line
// clears the block. Lines of the form "@key value" and "key : value" are
// decoded as YAML, free text is ignored.
//
// Uniforms of struct type are expanded into one entry per member, and per
// element for arrays: "Lights[0].Position".
func Parse(r io.Reader) (*Reflection, error) {
	ref := &Reflection{Structs: map[string][]Member{}}
	var comments []string

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			comments = comments[:0]
			continue
		}

		if m := regComment.FindStringSubmatch(line); m != nil {
			comments = append(comments, m[1])
			continue
		}

		if m := regStruct.FindStringSubmatch(line); m != nil {
			body, err := readStructBody(sc, line, &lineNo)
			if err != nil {
				return nil, err
			}
			ref.Structs[m[1]] = parseMembers(body)
			comments = comments[:0]
			continue
		}

		if m := regDecl.FindStringSubmatch(line); m != nil {
			ann, err := decodeAnnotation(comments)
			if err != nil {
				return nil, fmt.Errorf("binding: line %d: %w", lineNo, err)
			}
			e := Entry{Kind: Kind(m[1]), Type: m[2], Name: m[3], Annotation: ann}
			switch e.Kind {
			case Uniform:
				ref.Uniforms = append(ref.Uniforms, e)
			case Attribute:
				ref.Attributes = append(ref.Attributes, e)
			case Varying:
				ref.Varyings = append(ref.Varyings, e)
			}
			comments = comments[:0]
			continue
		}

		if m := regConst.FindStringSubmatch(line); m != nil {
			ref.Constants = append(ref.Constants, Entry{Kind: Constant, Type: m[1], Name: m[2], Value: m[3]})
		}
		comments = comments[:0]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("binding: read: %w", err)
	}

	if err := ref.expandStructs(); err != nil {
		return nil, err
	}
	return ref, nil
}

// readStructBody collects lines up to the closing "};".
func readStructBody(sc *bufio.Scanner, first string, lineNo *int) (string, error) {
	var b strings.Builder
	line := first
	start := *lineNo
	for {
		if i := strings.Index(line, "{"); i >= 0 {
			line = line[i+1:]
		}
		if i := strings.Index(line, "}"); i >= 0 {
			b.WriteString(line[:i])
			return b.String(), nil
		}
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		b.WriteString(line)
		b.WriteByte('\n')

		if !sc.Scan() {
			return "", fmt.Errorf("binding: line %d: unterminated struct", start)
		}
		*lineNo++
		line = sc.Text()
	}
}

func parseMembers(body string) []Member {
	var out []Member
	for _, decl := range strings.Split(body, ";") {
		decl = strings.Join(strings.Fields(decl), " ")
		if m := regMember.FindStringSubmatch(decl); m != nil {
			out = append(out, Member{Type: m[1], Name: m[2]})
		}
	}
	return out
}

// decodeAnnotation turns a comment block into an Annotation.
func decodeAnnotation(lines []string) (Annotation, error) {
	var doc strings.Builder
	for _, l := range lines {
		l = strings.TrimSpace(l)
		var key, val string
		if rest, ok := strings.CutPrefix(l, "@"); ok {
			key, val, _ = strings.Cut(rest, " ")
		} else if k, v, ok := strings.Cut(l, ":"); ok && !strings.ContainsAny(strings.TrimSpace(k), " \t") {
			key, val = k, v
		} else {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fmt.Fprintf(&doc, "%s: %s\n", key, strings.TrimSpace(val))
	}

	var ann Annotation
	if doc.Len() == 0 {
		return ann, nil
	}
	if err := yaml.Unmarshal([]byte(doc.String()), &ann); err != nil {
		return Annotation{}, fmt.Errorf("annotation: %w", err)
	}
	return ann, nil
}

func (r *Reflection) expandStructs() error {
	out := r.Uniforms[:0:0]
	for _, u := range r.Uniforms {
		members, ok := r.Structs[u.Type]
		if !ok {
			out = append(out, u)
			continue
		}

		base, count := u.Key(), 0
		if m := regArray.FindStringSubmatch(u.Name); m != nil {
			n, err := r.arraySize(m[2])
			if err != nil {
				return fmt.Errorf("binding: uniform %s: %w", u.Name, err)
			}
			count = n
			if u.Annotation.Binding == "" {
				base = m[1]
			}
		}

		emit := func(prefix string) {
			for _, mem := range members {
				key := prefix + "." + mem.Name
				out = append(out, Entry{
					Kind:       Uniform,
					Type:       mem.Type,
					Name:       key,
					Annotation: Annotation{Binding: key},
				})
			}
		}
		if count == 0 {
			emit(base)
			continue
		}
		for i := range count {
			emit(fmt.Sprintf("%s[%d]", base, i))
		}
	}
	r.Uniforms = out
	return nil
}

func (r *Reflection) arraySize(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	for _, c := range r.Constants {
		if c.Name == s {
			return strconv.Atoi(c.Value)
		}
	}
	return 0, fmt.Errorf("unknown array size %q", s)
}

// Uniform looks a uniform up by its key.
func (r *Reflection) Uniform(key string) (Entry, bool) {
	return find(r.Uniforms, key)
}

// Attribute looks an attribute up by its key.
func (r *Reflection) Attribute(key string) (Entry, bool) {
	return find(r.Attributes, key)
}

func find(entries []Entry, key string) (Entry, bool) {
	for _, e := range entries {
		if e.Key() == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Defaults maps uniform keys to their default values.
func (r *Reflection) Defaults() map[string]any {
	out := map[string]any{}
	for _, u := range r.Uniforms {
		if u.Annotation.Default != nil {
			out[u.Key()] = u.Annotation.Default
		}
	}
	return out
}

// Samplers returns the sampler uniforms in declaration order.
func (r *Reflection) Samplers() []Entry {
	var out []Entry
	for _, u := range r.Uniforms {
		if strings.HasPrefix(u.Type, "sampler") {
			out = append(out, u)
		}
	}
	return out
}

// Marshal encodes r as YAML.
func (r *Reflection) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
