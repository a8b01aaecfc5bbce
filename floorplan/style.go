package floorplan

import "estate_market/model"

type Style struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

const unitStrokeWidth = 0.3

var statusStyles = map[model.ApartmentStatus]Style{
	model.StatusAvailable: {Fill: "rgba(34, 197, 94, 0.4)", Stroke: "#16a34a", StrokeWidth: unitStrokeWidth},
	model.StatusReserved:  {Fill: "rgba(234, 179, 8, 0.4)", Stroke: "#ca8a04", StrokeWidth: unitStrokeWidth},
	model.StatusPending:   {Fill: "rgba(249, 115, 22, 0.4)", Stroke: "#ea580c", StrokeWidth: unitStrokeWidth},
	model.StatusSold:      {Fill: "rgba(100, 116, 139, 0.6)", Stroke: "#475569", StrokeWidth: unitStrokeWidth},
}

// unreachable for persisted apartments, statuses are validated on write
var unknownStyle = Style{Fill: "rgba(148, 163, 184, 0.3)", Stroke: "#94a3b8", StrokeWidth: unitStrokeWidth}

func StatusStyle(s model.ApartmentStatus) Style {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return unknownStyle
}

// IsLocked reports whether a unit gets the lock glyph.
func IsLocked(s model.ApartmentStatus) bool {
	return s != model.StatusAvailable
}
