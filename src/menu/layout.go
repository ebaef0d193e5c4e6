package menu

import "radial-menu/src/geometry"

// ResolveAngles computes the final angle of each sibling, in input order.
// Items with a fixed angle keep it verbatim; the remaining items are spread
// evenly across the cyclic gaps between consecutive fixed items. The result
// is a side table: the items themselves are never written to, so the caller's
// tree stays byte-identical for later serialization.
//
// Fixed angles are assumed distinct and listed in cyclic order; the config
// validator rejects configurations that violate this.
func ResolveAngles(items []*Item) []float64 {
	n := len(items)
	if n == 0 {
		return nil
	}
	angles := make([]float64, n)

	var fixed []int
	for i, it := range items {
		if it.Angle != nil {
			fixed = append(fixed, i)
			angles[i] = geometry.NormalizeAngle(*it.Angle)
		}
	}

	// No fixed siblings: even spread starting at the top.
	if len(fixed) == 0 {
		for i := range angles {
			angles[i] = float64(i) * 360 / float64(n)
		}
		return angles
	}

	// Walk each cyclic gap between consecutive fixed items and spread the
	// free run inside it. With a single fixed item the gap is the full
	// circle back to itself.
	for fi, start := range fixed {
		end := fixed[(fi+1)%len(fixed)]
		span := geometry.NormalizeAngle(angles[end] - angles[start])
		if span == 0 {
			span = 360
		}

		var run []int
		for j := (start + 1) % n; j != end; j = (j + 1) % n {
			run = append(run, j)
		}
		for ri, j := range run {
			step := span * float64(ri+1) / float64(len(run)+1)
			angles[j] = geometry.NormalizeAngle(angles[start] + step)
		}
	}
	return angles
}
