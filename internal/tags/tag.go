// Package tags implements user-defined hx@ tags: tokenizing them out of
// text, extracting them from comment nodes of parsed source files, and
// keeping the project-wide registry that enforces name uniqueness.
package tags

import "hxlsp/internal/files"

// Tag is one hx@name declaration. Name includes the hx@ prefix and contains
// no whitespace. Start and End are 0-indexed columns on Line, End exclusive.
type Tag struct {
	Name  string
	Start uint32
	End   uint32
	Line  uint32
	File  files.ID
}
