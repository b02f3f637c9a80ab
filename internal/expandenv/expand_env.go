// Package expandenv replaces ${key} in byte slices with the value of key.
package expandenv

import (
	"bytes"
	"os"
)

// ExpandEnv replaces ${var} in s with the value of the environment variable var.
func ExpandEnv(s []byte) []byte {
	return Expand(s, os.Getenv)
}

// Expand replaces ${var} in s with mapping(var). Unlike os.Expand, a bare $var
// is left alone, so values such as "$5" survive. ${} is removed, and a ${ which
// is never closed, or whose name holds a space, newline or quote, is kept as is.
func Expand(s []byte, mapping func(string) string) []byte {
	if !bytes.Contains(s, []byte("${")) {
		return s
	}
	buf := make([]byte, 0, 2*len(s))
	for {
		j := bytes.Index(s, []byte("${"))
		if j < 0 {
			return append(buf, s...)
		}
		buf = append(buf, s[:j]...)
		name, n := envName(s[j+2:])
		switch {
		case n < 0:
			buf = append(buf, "${"...)
			s = s[j+2:]
			continue
		case name != "":
			buf = append(buf, mapping(name)...)
		}
		s = s[j+2+n:]
	}
}

// envName returns the name before the closing '}' of s and how many bytes it
// spans including the '}', or -1 if s does not hold a valid name.
func envName(s []byte) (string, int) {
	for i, c := range s {
		switch c {
		case '}':
			return string(s[:i]), i + 1
		case ' ', '\n', '"':
			return "", -1
		}
	}
	return "", -1
}
