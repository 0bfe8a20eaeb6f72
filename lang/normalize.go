package lang

import "strings"

// Marker prefixes every host expression that contains scene source.
const Marker = "@3"

var typesetting = strings.NewReplacer(
	`\left`, "",
	`\right`, "",
	`\ `, " ",
)

// HasMarker reports whether raw host expression text is scene source.
func HasMarker(raw string) bool { return strings.HasPrefix(raw, Marker) }

// Normalize reduces raw host expression text to parser input: it removes a
// leading [Marker], drops the \left and \right sizing commands, and turns
// escaped spaces into plain spaces.
func Normalize(raw string) string {
	return typesetting.Replace(strings.TrimPrefix(raw, Marker))
}
