package render

import (
	"math"

	"github.com/lixenwraith/orbital-swarm/vmath"
)

// Camera orbits the origin at a spherical offset and projects world points
// onto a normalized image plane. Both demo renderers share it.
type Camera struct {
	Azimuth   float64 // radians around Y
	Elevation float64 // radians above the XZ plane
	Distance  float64 // world units from origin
	Focal     float64 // projection scale, ~1/tan(fov/2)
}

// NewCamera returns a camera at a three-quarter view suited to the default field size
func NewCamera() *Camera {
	return &Camera{
		Azimuth:   0.6,
		Elevation: 0.35,
		Distance:  28.0,
		Focal:     1.8,
	}
}

// Eye returns the camera position in world space
func (c *Camera) Eye() vmath.Vec3 {
	cosEl := math.Cos(c.Elevation)
	return vmath.Vec3{
		X: math.Cos(c.Azimuth) * cosEl * c.Distance,
		Y: math.Sin(c.Elevation) * c.Distance,
		Z: math.Sin(c.Azimuth) * cosEl * c.Distance,
	}
}

// Project maps a world point to normalized device coordinates: x and y in
// roughly [-1, 1] at the image edges, depth as distance along the view axis.
// ok is false for points at or behind the near plane.
func (c *Camera) Project(v vmath.Vec3) (x, y, depth float64, ok bool) {
	eye := c.Eye()
	forward := vmath.V3Normalize(vmath.V3Sub(vmath.Vec3{}, eye))
	right := vmath.V3Normalize(vmath.V3Cross(forward, vmath.Vec3{Y: 1}))
	up := vmath.V3Cross(right, forward)

	d := vmath.V3Sub(v, eye)
	cz := vmath.V3Dot(d, forward)
	if cz < 0.1 {
		return 0, 0, 0, false
	}
	inv := c.Focal / cz
	return vmath.V3Dot(d, right) * inv, vmath.V3Dot(d, up) * inv, cz, true
}

// Orbit rotates the view by the given azimuth/elevation deltas, keeping the
// elevation away from the poles where the up vector degenerates.
func (c *Camera) Orbit(dAzimuth, dElevation float64) {
	c.Azimuth += dAzimuth
	c.Elevation += dElevation
	const limit = 1.45
	if c.Elevation > limit {
		c.Elevation = limit
	}
	if c.Elevation < -limit {
		c.Elevation = -limit
	}
}

// Zoom scales the orbit distance, clamped to a usable range
func (c *Camera) Zoom(factor float64) {
	c.Distance *= factor
	if c.Distance < 4 {
		c.Distance = 4
	}
	if c.Distance > 200 {
		c.Distance = 200
	}
}
