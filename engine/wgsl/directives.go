package wgsl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// quoted matches a double-quoted string literal with backslash escapes,
// reused by every directive form that takes a path or name argument.
const quoted = `"((?:[^"\\]|\\.)*)"`

// importRe is used in isolation by resolveImports, which must run to a fixed
// point (all nested imports inlined) before any other directive is scanned,
// per §4.2 step 1. The remaining directive families are each scanned and
// rewritten in their own pass by preprocess.go; forms of one family that
// share a textual prefix (@texture/@texture_index, and sound's
// .play()/.stop() call form and its bare legacy form) are matched by one
// pattern in one pass.
var importRe = regexp.MustCompile(`@import\(\s*` + quoted + `\s*\)`)

// unescapeDialectString applies the dialect's minimal escape list
// (\n \r \t \" \\), per §4.2's @str directive and §9's note that richer
// escapes are out of scope.
func unescapeDialectString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte(s[i])
				b.WriteByte(s[i+1])
			}
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// strLiteral renders a @str("...") argument as a fixed 128-element u32
// array literal of ASCII codes, zero-padded, truncating (not erroring) past
// 128 characters per §8's boundary behavior.
func strLiteral(s string) string {
	unescaped := unescapeDialectString(s)
	codes := make([]int, 128)
	for i := 0; i < 128 && i < len(unescaped); i++ {
		codes[i] = int(unescaped[i])
	}
	parts := make([]string, 128)
	for i, c := range codes {
		parts[i] = strconv.Itoa(c) + "u"
	}
	return "array<u32,128>(" + strings.Join(parts, ",") + ")"
}

// engineFieldTarget rewrites @engine.<field> to the generated host-block
// variable's field, except "sampler" which lives in its own group-0 binding
// rather than the storage buffer.
func engineFieldTarget(field string) (string, error) {
	switch field {
	case "sampler":
		return samplerVarName, nil
	case "buttons", "time", "delta_time", "screen_width", "screen_height",
		"mouse", "keys", "state", "osc", "audio":
		return hostBlockVarName + "." + field, nil
	default:
		return "", fmt.Errorf("unknown @engine field %q", field)
	}
}
