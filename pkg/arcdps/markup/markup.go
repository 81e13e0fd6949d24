// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package markup builds text for the arcdps log window.
//
// The log window understands a single inline tag, <c=#RRGGBB>text</c>, which
// colors the enclosed text. Everything else is printed verbatim. [StyledText]
// collects colored and plain segments and renders them with [StyledText.Render].
package markup

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Named colors available through Color.
var namedColors = map[string]colorful.Color{
	"white":  {R: 1, G: 1, B: 1},
	"grey":   {R: 0.6, G: 0.6, B: 0.6},
	"red":    {R: 0.93, G: 0.27, B: 0.27},
	"green":  {R: 0.36, G: 0.8, B: 0.36},
	"yellow": {R: 0.98, G: 0.84, B: 0.25},
	"blue":   {R: 0.35, G: 0.6, B: 1},
	"teal":   {R: 0.3, G: 0.8, B: 0.8},
	"orange": {R: 1, G: 0.6, B: 0.2},
}

// StyledText is a sequence of plain and colored segments.
type StyledText struct {
	segments []segment
}

type segment struct {
	text  string
	color *colorful.Color
}

// Plain returns unstyled text.
func Plain(text string) StyledText {
	return StyledText{segments: []segment{{text: text}}}
}

// Colored returns text drawn in c.
func Colored(c colorful.Color, text string) StyledText {
	c = c.Clamped()
	return StyledText{segments: []segment{{text: text, color: &c}}}
}

// Color returns text drawn in a named color. Unknown names yield plain text.
func Color(name, text string) StyledText {
	c, ok := namedColors[strings.ToLower(name)]
	if !ok {
		return Plain(text)
	}
	return Colored(c, text)
}

// Hex returns text drawn in a #rrggbb color. Invalid input yields plain text.
func Hex(hex, text string) StyledText {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Plain(text)
	}
	return Colored(c, text)
}

// Append combines two StyledText values.
func (st StyledText) Append(other StyledText) StyledText {
	segments := make([]segment, 0, len(st.segments)+len(other.segments))
	segments = append(segments, st.segments...)
	return StyledText{segments: append(segments, other.segments...)}
}

// AppendText appends plain text.
func (st StyledText) AppendText(text string) StyledText {
	return st.Append(Plain(text))
}

// Render returns the text with color tags for the log window.
func (st StyledText) Render() string {
	var buf strings.Builder
	for _, seg := range st.segments {
		if seg.color == nil || seg.text == "" {
			buf.WriteString(seg.text)
			continue
		}
		buf.WriteString("<c=")
		buf.WriteString(seg.color.Hex())
		buf.WriteString(">")
		buf.WriteString(seg.text)
		buf.WriteString("</c>")
	}
	return buf.String()
}

// String returns the text without any color tags.
func (st StyledText) String() string {
	var buf strings.Builder
	for _, seg := range st.segments {
		buf.WriteString(seg.text)
	}
	return buf.String()
}
