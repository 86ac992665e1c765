package render

import "github.com/taigrr/prism/pkg/math3d"

// Sutherland-Hodgman clipping against the six homogeneous-clip-space
// half-spaces, applied in order x>=-w, x<=w, y>=-w, y<=w, z>=0, z<=w.
// The clip volume places the near plane at z=0 and the far plane at z=w.
//
// A triangle clipped by six planes yields at most 9 vertices, so two
// fixed-size scratch buffers in the arena are ping-ponged between planes.

// maxClippedVertices bounds the polygon produced by clipping one triangle.
const maxClippedVertices = 3 * 3

// zMinPlane selects the near clip plane: z >= 0 (forward-positive clip
// volume).
const zMinPlane = 0

// clipAgainstPlane runs one Sutherland-Hodgman pass over the polygon in
// input, writing survivors to output and returning their count. The
// half-space is edge*w on the given axis (0=x, 1=y, 2=z); isMax selects
// value <= edge*w, otherwise value >= edge*w. Location, normal, and uv are
// interpolated linearly at edge crossings.
func clipAgainstPlane[T math3d.Float](input []Vertex[T], output []Vertex[T], edge T, axis int, isMax bool) int {
	inside := func(v *Vertex[T], val T) bool {
		if isMax {
			return val <= edge*v.Location.W
		}
		return val >= edge*v.Location.W
	}
	axisVal := func(v *Vertex[T]) T {
		switch axis {
		case 0:
			return v.Location.X
		case 1:
			return v.Location.Y
		default:
			return v.Location.Z
		}
	}

	outputCount := 0
	prev := input[len(input)-1]
	prevVal := axisVal(&prev)
	prevInside := inside(&prev, prevVal)

	for i := range input {
		curr := input[i]
		currVal := axisVal(&curr)
		currInside := inside(&curr, currVal)

		if currInside != prevInside {
			t := (edge*prev.Location.W - prevVal) /
				((edge*prev.Location.W - prevVal) - (edge*curr.Location.W - currVal))
			output[outputCount] = Vertex[T]{
				Location: prev.Location.Lerp(curr.Location, t),
				Normal:   prev.Normal.Lerp(curr.Normal, t),
				Coord:    prev.Coord.Lerp(curr.Coord, t),
			}
			outputCount++
		}

		if currInside {
			output[outputCount] = curr
			outputCount++
		}

		prev = curr
		prevVal = currVal
		prevInside = currInside
	}
	return outputCount
}

// clipTriangleFan clips tri against all six planes and fan-triangulates the
// surviving polygon into dst as (p[0], p[i], p[i+1]). It returns the number
// of triangles written: zero when the triangle is culled, one when it
// survives whole, up to maxClippedVertices-2 otherwise. dst must hold at
// least maxClippedVertices-2 entries. Scratch memory comes from the arena.
func clipTriangleFan[T math3d.Float](a *Arena, tri Triangle[T], dst []Triangle[T]) int {
	input := PushSlice[Vertex[T]](a, maxClippedVertices)
	output := PushSlice[Vertex[T]](a, maxClippedVertices)

	input[0] = tri.V0
	input[1] = tri.V1
	input[2] = tri.V2
	count := 3

	planes := [6]T{-1, 1, -1, 1, zMinPlane, 1}
	axes := [6]int{0, 0, 1, 1, 2, 2}

	for i := 0; i < 6; i++ {
		count = clipAgainstPlane(input[:count], output, planes[i], axes[i], i%2 == 1)
		if count == 0 {
			PopSlice[Vertex[T]](a, maxClippedVertices)
			PopSlice[Vertex[T]](a, maxClippedVertices)
			return 0
		}
		copy(input, output[:count])
	}

	n := 0
	for i := 1; i < count-1; i++ {
		dst[n] = Triangle[T]{V0: input[0], V1: input[i], V2: input[i+1]}
		n++
	}

	PopSlice[Vertex[T]](a, maxClippedVertices)
	PopSlice[Vertex[T]](a, maxClippedVertices)
	return n
}
