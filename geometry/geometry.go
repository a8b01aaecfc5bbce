// Package geometry holds the percentage-coordinate helpers used to capture,
// label and render floor-plan polygons.
package geometry

import (
	"strconv"
	"strings"
)

// Point is a position expressed as a percentage (0-100) of the floor-plan
// image width and height.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the on-screen box of the floor-plan image the pointer was captured on.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func ClampPoint(p Point) Point {
	return Point{X: Clamp(p.X), Y: Clamp(p.Y)}
}

func InRange(p Point) bool {
	return p.X >= 0 && p.X <= 100 && p.Y >= 0 && p.Y <= 100
}

// ToPercentagePoint maps a raw client position (mouse or touch, it does not
// matter) onto the container and clamps both axes to [0,100].
func ToPercentagePoint(rawX, rawY float64, container Rect) Point {
	if container.Width <= 0 || container.Height <= 0 {
		return Point{}
	}
	x := (rawX - container.Left) / container.Width * 100
	y := (rawY - container.Top) / container.Height * 100
	return Point{X: Clamp(x), Y: Clamp(y)}
}

// PolygonCentroid returns the arithmetic mean of the vertices. It is only
// used to place labels, so it is not area weighted.
func PolygonCentroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return Point{X: sumX / n, Y: sumY / n}
}

// SerializePolygon renders points as the "x,y x,y" list consumed by SVG
// polygon and polyline elements.
func SerializePolygon(points []Point) string {
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, FormatFloat(p.X)+","+FormatFloat(p.Y))
	}
	return strings.Join(parts, " ")
}

func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Contains reports whether p lies inside the polygon using the even-odd rule.
func Contains(polygon []Point, p Point) bool {
	if len(polygon) < 3 {
		return false
	}
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		a, b := polygon[i], polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			crossX := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
