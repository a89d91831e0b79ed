package capture

import (
	"context"
	"image"
)

// Facing selects which physical camera a stream request asks for.
type Facing string

const (
	// FacingEnvironment is the rear, world-facing camera.
	FacingEnvironment Facing = "environment"
	// FacingUser is the front, selfie-facing camera.
	FacingUser Facing = "user"
)

// Flip returns the opposite facing.
func (f Facing) Flip() Facing {
	if f == FacingEnvironment {
		return FacingUser
	}
	return FacingEnvironment
}

// DeviceInfo describes one video input reported by enumeration.
type DeviceInfo struct {
	ID     string
	Label  string
	Facing Facing
}

// ZoomRange is a stream's declared zoom capability. A usable range has
// Max > Min. Current is the level the track starts at; 0 means unreported.
type ZoomRange struct {
	Min     float64
	Max     float64
	Step    float64
	Current float64
}

// Device abstracts the camera hardware layer, regardless of how frames are
// actually produced (kernel video device, files on disk, a test double).
type Device interface {
	// Open acquires a live stream from the camera with the given facing.
	Open(ctx context.Context, facing Facing) (Stream, error)

	// Enumerate lists the available video inputs.
	Enumerate(ctx context.Context) ([]DeviceInfo, error)
}

// Stream is a live camera stream. Close releases the underlying device and
// must be safe to call more than once.
type Stream interface {
	// Frame returns the current video frame at native resolution.
	Frame(ctx context.Context) (image.Image, error)

	// ZoomRange reports the stream's declared zoom capability. The second
	// return is false when the device declares none.
	ZoomRange() (ZoomRange, bool)

	// SetZoom applies a zoom level to the stream. Out-of-range levels are
	// rejected by the device, not clamped here.
	SetZoom(level float64) error

	Close() error
}
