// Package status defines the canonical status vocabularies shared by every
// supported service.
//
// Download, Media and Request are closed sets. Each value is the stable wire
// string, so they can be used directly as JSON or map values. Every type
// exposes classifier methods (IsActive, IsTerminal, ...), a display Priority
// where lower means more urgent, a Label and a ColorClass.
//
// Use package normalize to translate an upstream service's own vocabulary
// into these values.
package status

// Color names returned by the ColorClass methods.
const (
	ColorGray   = "gray"
	ColorCyan   = "cyan"
	ColorBlue   = "blue"
	ColorPurple = "purple"
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
)
