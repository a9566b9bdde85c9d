package mermaid

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

var idReplacer = strings.NewReplacer(
	"(", "", ")", "",
	"[", "", "]", "",
	"{", "", "}", "",
	"<", "", ">", "",
	"?", "", "!", "",
	"'", "", `"`, "",
	"/", "_", `\`, "_",
	"-", "_", ":", "_",
	".", "_", ",", "_",
	"&", "_and_",
)

// keywords break flowchart parsing when used as bare node identifiers.
var keywords = map[string]bool{
	"end":       true,
	"graph":     true,
	"flowchart": true,
	"subgraph":  true,
	"style":     true,
	"class":     true,
	"classdef":  true,
	"click":     true,
	"linkstyle": true,
	"direction": true,
}

// NodeID derives a Mermaid-safe identifier from a label.
//
// Whitespace becomes "_", brackets and punctuation are removed or replaced
// ("&" becomes "_and_"), and any remaining rune that is not a letter, digit
// or underscore is dropped. Identifiers starting with a digit get an "n_"
// prefix, Mermaid keywords a "_node" suffix. A label that sanitizes to
// nothing maps to "node_" plus a stable hash of the label.
//
// NodeID is a pure function; distinct labels may collide.
func NodeID(label string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, label)
	s = idReplacer.Replace(s)
	s = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)

	switch {
	case s == "":
		return fmt.Sprintf("node_%04d", stableHash(label)%10000)
	case unicode.IsDigit([]rune(s)[0]):
		return "n_" + s
	case keywords[strings.ToLower(s)]:
		return s + "_node"
	}
	return s
}

func stableHash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
