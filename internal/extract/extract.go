// Package extract builds a structural model of generated Rust sources.
//
// Extraction is a block-aware line scan, not a grammar parse: brace depth
// is tracked to delimit impl blocks, and public items are recognized by
// header patterns. Nested impl blocks are not supported; the generator
// never emits them.
package extract

import (
	"regexp"
	"strings"
)

// Signature describes one function exposed by a module.
type Signature struct {
	Name       string
	ReturnType string
	Owner      string // empty for free functions
	// Synthesized marks signatures derived from a trait impl header
	// (From/Default) rather than a scanned fn item.
	Synthesized bool
}

// Key returns the map key the signature is recorded under: "Owner::name"
// for methods, the bare name for free functions.
func (s Signature) Key() string {
	if s.Owner == "" {
		return s.Name
	}
	return s.Owner + "::" + s.Name
}

// Symbols is the structural model extracted from one or more source files.
type Symbols struct {
	Types     map[string]bool
	Functions map[string]Signature
	Constants map[string]bool
}

// NewSymbols returns an empty model.
func NewSymbols() Symbols {
	return Symbols{
		Types:     make(map[string]bool),
		Functions: make(map[string]Signature),
		Constants: make(map[string]bool),
	}
}

// Merge folds other into s.
func (s Symbols) Merge(other Symbols) {
	for name := range other.Types {
		s.Types[name] = true
	}
	for key, sig := range other.Functions {
		s.Functions[key] = sig
	}
	for name := range other.Constants {
		s.Constants[name] = true
	}
}

var (
	implFromRe    = regexp.MustCompile(`impl\s+From<[^>]+>\s+for\s+(\w+)`)
	implDefaultRe = regexp.MustCompile(`impl\s+Default\s+for\s+(\w+)`)
	implRe        = regexp.MustCompile(`impl\s+(\w+)`)
	fnRe          = regexp.MustCompile(`pub\s+fn\s+(\w+)\s*\([^)]*\)\s*(?:->\s*([^{]+))?`)
	structRe      = regexp.MustCompile(`pub\s+struct\s+(\w+)`)
	enumRe        = regexp.MustCompile(`pub\s+enum\s+(\w+)`)
	constRe       = regexp.MustCompile(`pub\s+const\s+(\w+):\s*[^=]+=`)
)

type blockKind int

const (
	blockGlobal blockKind = iota
	blockImpl
	blockImplFrom
	blockImplDefault
)

type block struct {
	kind  blockKind
	owner string
	lines []string
}

// Parse extracts types, functions, and constants from raw source text.
func Parse(content string) Symbols {
	syms := NewSymbols()

	for _, b := range splitBlocks(stripComments(content)) {
		switch b.kind {
		case blockGlobal:
			parseGlobal(b.lines, syms)
		case blockImpl:
			parseImplBlock(strings.Join(b.lines, "\n"), b.owner, syms)
		case blockImplFrom:
			// From<&[Pubkey]> impls declare the conversion in the header;
			// record it as a synthesized from() taking the address slice.
			sig := Signature{Name: "from", ReturnType: "Self", Owner: b.owner, Synthesized: true}
			syms.Functions[sig.Key()] = sig
		case blockImplDefault:
			sig := Signature{Name: "default", ReturnType: "Self", Owner: b.owner, Synthesized: true}
			syms.Functions[sig.Key()] = sig
		}
	}

	return syms
}

// stripComments removes trailing line comments. Comment markers inside
// string literals are not distinguished; generated code does not produce
// them.
func stripComments(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

// splitBlocks partitions source lines into global segments and impl blocks.
// An impl header closes any open block; nested impls therefore produce
// undefined boundaries.
func splitBlocks(content string) []block {
	var blocks []block
	current := block{kind: blockGlobal}
	depth := 0

	flush := func() {
		if len(current.lines) > 0 {
			blocks = append(blocks, current)
		}
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		// Header priority matters: "impl From<..> for T" and
		// "impl Default for T" both also match the plain impl pattern.
		if m := implFromRe.FindStringSubmatch(line); m != nil {
			flush()
			current = block{kind: blockImplFrom, owner: m[1]}
			depth = 0
		} else if m := implDefaultRe.FindStringSubmatch(line); m != nil {
			flush()
			current = block{kind: blockImplDefault, owner: m[1]}
			depth = 0
		} else if m := implRe.FindStringSubmatch(line); m != nil {
			flush()
			current = block{kind: blockImpl, owner: m[1]}
			depth = 0
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		current.lines = append(current.lines, line)

		if current.kind != blockGlobal && depth == 0 && strings.Contains(line, "}") {
			flush()
			current = block{kind: blockGlobal}
		}
	}

	flush()
	return blocks
}

// parseGlobal records type, constant, and free-function headers.
func parseGlobal(lines []string, syms Symbols) {
	for _, line := range lines {
		if m := structRe.FindStringSubmatch(line); m != nil {
			syms.Types[m[1]] = true
			continue
		}
		if m := enumRe.FindStringSubmatch(line); m != nil {
			syms.Types[m[1]] = true
			continue
		}
		if m := constRe.FindStringSubmatch(line); m != nil {
			syms.Constants[m[1]] = true
			continue
		}
		if m := fnRe.FindStringSubmatch(line); m != nil {
			sig := Signature{Name: m[1], ReturnType: normalizeReturn(m[1], m[2])}
			syms.Functions[sig.Key()] = sig
		}
	}
}

// parseImplBlock scans a whole impl block at once so that signatures whose
// parameter list or return type spans lines are still matched.
func parseImplBlock(content, owner string, syms Symbols) {
	for _, m := range fnRe.FindAllStringSubmatch(content, -1) {
		sig := Signature{
			Name:       m[1],
			ReturnType: normalizeReturn(m[1], m[2]),
			Owner:      owner,
		}
		syms.Functions[sig.Key()] = sig
	}
}

// normalizeReturn canonicalizes return-type text for the well-known
// serialization entry points, tolerating generator formatting drift.
func normalizeReturn(name, returnType string) string {
	switch name {
	case "from_bytes":
		return "Result<Self, std::io::Error>"
	case "try_to_vec":
		return "std::io::Result<Vec<u8>>"
	case "default":
		return "Self"
	}
	returnType = strings.TrimSpace(returnType)
	if returnType == "" {
		return "()"
	}
	return returnType
}
