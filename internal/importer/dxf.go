package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

const (
	// joinTolerance is the largest gap between two endpoints that still
	// connects loose segments.
	joinTolerance = 0.01
	// minExtent drops shapes thinner than this in either direction.
	minExtent = 0.01
	// arcSteps is the number of chords used to flatten a full circle.
	arcSteps = 64
)

// outline is a closed polygon read from a drawing.
type outline []model.Point

// bounds returns the outline's bounding rectangle.
func (o outline) bounds() model.Rect {
	if len(o) == 0 {
		return model.Rect{}
	}
	lo, hi := o[0], o[0]
	for _, p := range o[1:] {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return model.Rect{Point: lo, Size: model.Size{Width: hi.X - lo.X, Height: hi.Y - lo.Y}}
}

// segment is one straight piece of an open LINE or ARC.
type segment struct {
	start model.Point
	end   model.Point
}

// shapeCollector sorts drawing entities into closed outlines and loose
// segments that still have to be joined.
type shapeCollector struct {
	outlines []outline
	loose    []segment
	result   *ImportResult
}

func (c *shapeCollector) add(ent entity.Entity) {
	switch e := ent.(type) {
	case *entity.LwPolyline:
		if o := flattenPolyline(e); len(o) >= 3 {
			c.outlines = append(c.outlines, o)
		} else {
			c.result.warnf("Skipped LWPOLYLINE with fewer than 3 vertices")
		}
	case *entity.Circle:
		o := arcPoints(model.Point{X: e.Center[0], Y: e.Center[1]}, e.Radius, 0, 2*math.Pi, arcSteps)
		c.outlines = append(c.outlines, o[:len(o)-1])
	case *entity.Arc:
		from := e.Angle[0] * math.Pi / 180
		to := e.Angle[1] * math.Pi / 180
		if to <= from {
			to += 2 * math.Pi
		}
		pts := arcPoints(model.Point{X: e.Circle.Center[0], Y: e.Circle.Center[1]}, e.Circle.Radius, from, to, arcSteps/2)
		for i := 1; i < len(pts); i++ {
			c.loose = append(c.loose, segment{start: pts[i-1], end: pts[i]})
		}
	case *entity.Line:
		c.loose = append(c.loose, segment{
			start: model.Point{X: e.Start[0], Y: e.Start[1]},
			end:   model.Point{X: e.End[0], Y: e.End[1]},
		})
	}
}

// ImportDXF imports items from a DXF file. Each closed shape (LWPOLYLINE,
// CIRCLE, or chain of connected LINEs and ARCs) becomes one item sized to its
// bounding box. Polylines and circles keep drawing order; joined chains follow,
// largest first.
func ImportDXF(path string) ImportResult {
	var result ImportResult

	drawing, err := dxf.Open(path)
	if err != nil {
		result.errorf("Cannot open DXF file: %v", err)
		return result
	}
	entities := drawing.Entities()
	if len(entities) == 0 {
		result.errorf("DXF file contains no entities")
		return result
	}

	c := shapeCollector{result: &result}
	for _, ent := range entities {
		c.add(ent)
	}
	shapes := append(c.outlines, chainSegments(c.loose, joinTolerance)...)
	if len(shapes) == 0 {
		result.errorf("No closed shapes found in DXF file")
		return result
	}

	for i, o := range shapes {
		box := o.bounds()
		if box.Width < minExtent || box.Height < minExtent {
			result.warnf("Skipped degenerate shape (%.2f x %.2f)", box.Width, box.Height)
			continue
		}
		result.Items = append(result.Items, model.NewItem(fmt.Sprintf("DXF Item %d", i+1), box.Width, box.Height, 1))
	}
	return result
}

// flattenPolyline returns the vertices of lw with bulged edges replaced by
// chords along their arc.
func flattenPolyline(lw *entity.LwPolyline) outline {
	n := len(lw.Vertices)
	var o outline
	for i, v := range lw.Vertices {
		from := model.Point{X: v[0], Y: v[1]}
		var bulge float64
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) <= 1e-9 {
			o = append(o, from)
			continue
		}
		next := lw.Vertices[(i+1)%n]
		arc := bulgePoints(from, model.Point{X: next[0], Y: next[1]}, bulge)
		o = append(o, arc[:len(arc)-1]...)
	}
	return o
}

// bulgePoints flattens the edge from p1 to p2 with the given DXF bulge (the
// tangent of a quarter of the included angle, positive counter-clockwise).
func bulgePoints(p1, p2 model.Point, bulge float64) outline {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return outline{p1, p2}
	}

	sweep := 4 * math.Atan(bulge)
	radius := chord / (2 * math.Abs(math.Sin(sweep/2)))
	// The centre sits on the chord's perpendicular bisector, on the left of
	// p1->p2 for counter-clockwise arcs under a half turn.
	offset := radius * math.Cos(sweep/2)
	nx, ny := -dy/chord, dx/chord
	if bulge < 0 {
		nx, ny = -nx, -ny
	}
	centre := model.Point{X: (p1.X+p2.X)/2 + nx*offset, Y: (p1.Y+p2.Y)/2 + ny*offset}

	from := math.Atan2(p1.Y-centre.Y, p1.X-centre.X)
	return arcPoints(centre, radius, from, from+sweep, arcSteps/2)
}

// arcPoints returns steps+1 points from angle from to angle to (radians).
func arcPoints(centre model.Point, radius, from, to float64, steps int) outline {
	pts := make(outline, steps+1)
	for i := range pts {
		a := from + (to-from)*float64(i)/float64(steps)
		pts[i] = model.Point{X: centre.X + radius*math.Cos(a), Y: centre.Y + radius*math.Sin(a)}
	}
	return pts
}

// chainSegments joins segments whose endpoints lie within tolerance into
// polygons. Chains of fewer than three points are dropped; a closing point
// equal to the start is removed. The result is sorted by area, largest first.
func chainSegments(segs []segment, tolerance float64) []outline {
	used := make([]bool, len(segs))
	near := func(a, b model.Point) bool {
		return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
	}

	// extend appends the segment touching tail, reporting whether one was found.
	extend := func(chain outline) (outline, bool) {
		tail := chain[len(chain)-1]
		for i, s := range segs {
			if used[i] {
				continue
			}
			switch {
			case near(tail, s.start):
				used[i] = true
				return append(chain, s.end), true
			case near(tail, s.end):
				used[i] = true
				return append(chain, s.start), true
			}
		}
		return chain, false
	}

	var outlines []outline
	for i, s := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		chain := outline{s.start, s.end}
		for grown := true; grown; {
			chain, grown = extend(chain)
		}
		if len(chain) >= 3 && near(chain[0], chain[len(chain)-1]) {
			chain = chain[:len(chain)-1]
		}
		if len(chain) >= 3 {
			outlines = append(outlines, chain)
		}
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})
	return outlines
}

// outlineArea is the absolute shoelace area of o.
func outlineArea(o outline) float64 {
	if len(o) < 3 {
		return 0
	}
	var twice float64
	for i, p := range o {
		q := o[(i+1)%len(o)]
		twice += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(twice) / 2
}
