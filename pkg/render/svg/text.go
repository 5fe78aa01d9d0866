package svg

import (
	"bytes"
	"encoding/xml"
)

// EscapeXML escapes a string for embedding in SVG content or attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
