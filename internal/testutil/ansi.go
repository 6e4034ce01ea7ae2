// Package testutil holds helpers shared by tests that inspect terminal output.
package testutil

import "regexp"

// csi matches SGR and cursor control sequences, the only escapes the
// triplegen UI emits.
var csi = regexp.MustCompile("\x1b\\[[0-9;?]*[A-Za-z]")

// StripAnsiCodes returns s without terminal escape sequences so tests can
// compare rendered output against plain text.
func StripAnsiCodes(s string) string {
	return csi.ReplaceAllLiteralString(s, "")
}
