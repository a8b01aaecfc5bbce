package floorplan

import (
	"fmt"
	"html"
	"strings"

	"estate_market/geometry"
)

const (
	editorFill         = "rgba(79, 70, 229, 0.2)"
	editorSelectedFill = "rgba(79, 70, 229, 0.5)"
	editorStroke       = "#4338ca"
	draftColor         = "#ef4444"

	lockSymbol = `  <defs><symbol id="lock" viewBox="0 0 24 24" fill="none" stroke="white" stroke-width="3"><rect x="3" y="11" width="18" height="11" rx="2"/><path d="M7 11V7a5 5 0 0 1 10 0v4"/></symbol></defs>`
)

func openSVG(b *strings.Builder) {
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" preserveAspectRatio="none">`)
	b.WriteString("\n")
}

func writeLabel(b *strings.Builder, at geometry.Point, text string) {
	b.WriteString(fmt.Sprintf(`  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-size="3" font-weight="bold" fill="white" stroke="black" stroke-width="0.1">%s</text>`,
		geometry.FormatFloat(at.X), geometry.FormatFloat(at.Y), html.EscapeString(text)))
	b.WriteString("\n")
}

// RenderOverlay draws the status coloured overlay placed above the floor
// plan image.
func (v *Viewer) RenderOverlay() string {
	var b strings.Builder
	openSVG(&b)
	b.WriteString(lockSymbol + "\n")
	for _, unit := range v.Render() {
		b.WriteString(fmt.Sprintf(`  <polygon data-id="%s" points="%s" fill="%s" stroke="%s" stroke-width="%s"/>`,
			html.EscapeString(unit.ID), unit.Points, unit.Style.Fill, unit.Style.Stroke, geometry.FormatFloat(unit.Style.StrokeWidth)))
		b.WriteString("\n")
		writeLabel(&b, unit.Label, unit.UnitNumber)
		if unit.Lock != nil {
			b.WriteString(fmt.Sprintf(`  <use href="#lock" x="%s" y="%s" width="4" height="4"/>`,
				geometry.FormatFloat(unit.Lock.X), geometry.FormatFloat(unit.Lock.Y)))
			b.WriteString("\n")
		}
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// RenderEditorOverlay draws the authored apartments in the editor palette
// and the shape in progress as a dashed polyline with vertex dots.
func (e *Editor) RenderEditorOverlay() string {
	var b strings.Builder
	openSVG(&b)
	for _, a := range e.apartments {
		fill := editorFill
		if a.ID == e.selectedId {
			fill = editorSelectedFill
		}
		b.WriteString(fmt.Sprintf(`  <polygon data-id="%s" points="%s" fill="%s" stroke="%s" stroke-width="0.5"/>`,
			html.EscapeString(a.ID), geometry.SerializePolygon(a.Points()), fill, editorStroke))
		b.WriteString("\n")
		writeLabel(&b, geometry.PolygonCentroid(a.Points()), a.UnitNumber)
	}
	if len(e.points) > 0 {
		b.WriteString(fmt.Sprintf(`  <polyline points="%s" fill="none" stroke="%s" stroke-width="0.5" stroke-dasharray="1 1"/>`,
			geometry.SerializePolygon(e.points), draftColor))
		b.WriteString("\n")
		for _, p := range e.points {
			b.WriteString(fmt.Sprintf(`  <circle cx="%s" cy="%s" r="1" fill="%s"/>`,
				geometry.FormatFloat(p.X), geometry.FormatFloat(p.Y), draftColor))
			b.WriteString("\n")
		}
	}
	b.WriteString(`</svg>`)
	return b.String()
}
