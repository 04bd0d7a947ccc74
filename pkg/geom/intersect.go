package geom

// Intersection kernels. Pure functions, no allocation. All boundary
// comparisons are inclusive: shared-face or shared-edge contact counts
// as an intersection.

// TestAABBAABB reports whether the two boxes overlap on all three axes.
func TestAABBAABB(a, b AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Min.At(i) > b.Max.At(i) || a.Max.At(i) < b.Min.At(i) {
			return false
		}
	}
	return true
}

func absReal(x Real) Real {
	if x < 0 {
		return -x
	}
	return x
}

func minMax3(a, b, c Real) (Real, Real) {
	lo, hi := a, a
	if b < lo {
		lo = b
	}
	if b > hi {
		hi = b
	}
	if c < lo {
		lo = c
	}
	if c > hi {
		hi = c
	}
	return lo, hi
}

// TestTriangleAABB runs the separating axis theorem over the 13
// candidate axes (3 box normals, the triangle normal, and the 9 cross
// products of box edges with triangle edges). Degenerate (zero-area)
// triangles never intersect.
func TestTriangleAABB(v0, v1, v2 Vec3, box AABB) bool {
	c := box.Center()
	h := box.Dims().Scale(0.5)

	// Translate the triangle so the box is centered at the origin.
	t0 := v0.Sub(c)
	t1 := v1.Sub(c)
	t2 := v2.Sub(c)

	e0 := t1.Sub(t0)
	e1 := t2.Sub(t1)
	e2 := t0.Sub(t2)

	n := e0.Cross(e1)
	if n.LengthSquared() == 0 {
		return false
	}

	// Separation must be strict so that touching still intersects.
	separated := func(axis Vec3) bool {
		p0 := axis.Dot(t0)
		p1 := axis.Dot(t1)
		p2 := axis.Dot(t2)
		r := h.X*absReal(axis.X) + h.Y*absReal(axis.Y) + h.Z*absReal(axis.Z)
		lo, hi := minMax3(p0, p1, p2)
		return lo > r || hi < -r
	}

	// 9 cross-product axes.
	for _, e := range [3]Vec3{e0, e1, e2} {
		if separated(V(0, -e.Z, e.Y)) {
			return false
		}
		if separated(V(e.Z, 0, -e.X)) {
			return false
		}
		if separated(V(-e.Y, e.X, 0)) {
			return false
		}
	}

	// 3 box normals.
	for i := 0; i < 3; i++ {
		lo, hi := minMax3(t0.At(i), t1.At(i), t2.At(i))
		if lo > h.At(i) || hi < -h.At(i) {
			return false
		}
	}

	// Triangle plane.
	return !separated(n)
}

// IntersectResult holds the polygon of a triangle clipped to a box:
// up to six points.
type IntersectResult struct {
	Points [6]Vec3
	Count  int
}

// clipAxis clips the polygon in src against one face plane of the box,
// writing the result to dst. sign selects the low (-1) or high (+1)
// face on the axis. Points on the plane are kept.
func clipAxis(dst, src []Vec3, axis int, limit Real, sign Real) []Vec3 {
	dst = dst[:0]
	n := len(src)
	for i := 0; i < n; i++ {
		cur := src[i]
		next := src[(i+1)%n]
		curIn := sign*(cur.At(axis)-limit) <= 0
		nextIn := sign*(next.At(axis)-limit) <= 0
		if curIn {
			dst = append(dst, cur)
		}
		if curIn != nextIn {
			t := (limit - cur.At(axis)) / (next.At(axis) - cur.At(axis))
			p := cur.Add(next.Sub(cur).Scale(t))
			p.SetAt(axis, limit)
			dst = append(dst, p)
		}
	}
	return dst
}

// IntersectFaceAABB clips the triangle (v0, v1, v2) against the box and
// returns the resulting polygon. At most six points are returned; a
// clipped polygon with more vertices keeps only its first six. Only the
// auxiliary barycentric path
// uses this; the decomposer filters with TestTriangleAABB.
func IntersectFaceAABB(v0, v1, v2 Vec3, box AABB) IntersectResult {
	var bufA, bufB [16]Vec3
	poly := append(bufA[:0], v0, v1, v2)
	scratch := bufB[:0]
	for axis := 0; axis < 3; axis++ {
		poly, scratch = clipAxis(scratch, poly, axis, box.Min.At(axis), -1), poly
		poly, scratch = clipAxis(scratch, poly, axis, box.Max.At(axis), +1), poly
	}

	var result IntersectResult
	for _, p := range poly {
		if result.Count == len(result.Points) {
			break
		}
		result.Points[result.Count] = p
		result.Count++
	}
	return result
}

// SegmentHit holds the ray parameters at which a segment enters and
// leaves a box. Parameters are relative to the segment: 0 at p0, 1 at
// p1.
type SegmentHit struct {
	TMin, TMax Real
}

// IntersectSegmentAABB intersects the segment p0→p1 with the box using
// the slab method. The second return value is false on a miss.
func IntersectSegmentAABB(p0, p1 Vec3, box AABB) (SegmentHit, bool) {
	dir := p1.Sub(p0)
	tMin := Real(0)
	tMax := Real(1)
	for i := 0; i < 3; i++ {
		if dir.At(i) == 0 {
			if p0.At(i) < box.Min.At(i) || p0.At(i) > box.Max.At(i) {
				return SegmentHit{}, false
			}
			continue
		}
		inv := 1 / dir.At(i)
		tLo := (box.Min.At(i) - p0.At(i)) * inv
		tHi := (box.Max.At(i) - p0.At(i)) * inv
		if tLo > tHi {
			tLo, tHi = tHi, tLo
		}
		if tLo > tMin {
			tMin = tLo
		}
		if tHi < tMax {
			tMax = tHi
		}
		if tMin > tMax {
			return SegmentHit{}, false
		}
	}
	return SegmentHit{TMin: tMin, TMax: tMax}, true
}

// Barycentric returns the barycentric coordinates of p with respect to
// the triangle (a, b, c). The three weights sum to 1 for points in the
// triangle's plane.
func Barycentric(p, a, b, c Vec3) Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d00 := ab.Dot(ab)
	d01 := ab.Dot(ac)
	d11 := ac.Dot(ac)
	d20 := ap.Dot(ab)
	d21 := ap.Dot(ac)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return V(1, 0, 0)
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	return V(1-v-w, v, w)
}
