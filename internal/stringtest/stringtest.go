// Package stringtest builds multi-line test fixtures with explicit line
// endings.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//	) // -> "line1\nline2"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings.
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}

// Lines joins multiple strings with LF line endings and terminates the last
// one, matching how documents are written to disk.
//
// Example:
//
//	doc := stringtest.Lines(
//		"# Title",
//		"",
//	) // -> "# Title\n\n"
func Lines(ss ...string) string {
	if len(ss) == 0 {
		return ""
	}
	return JoinLF(ss...) + "\n"
}
