// Package fakecam provides a scriptable capture.Device for tests and for
// running the app without real camera hardware. Failures, zoom capability,
// and the enumerated device list are all configurable, and every Open
// attempt is recorded.
package fakecam

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/Rockhound-GO/Attic-Inventory/internal/capture"
)

// Device is an in-memory capture.Device.
type Device struct {
	mu sync.Mutex

	// FailEnvironment / FailUser make Open fail for that facing.
	FailEnvironment bool
	FailUser        bool

	// FailEnumerate makes Enumerate return an error.
	FailEnumerate bool

	// Inputs is the device list Enumerate reports. Defaults to two cameras.
	Inputs []capture.DeviceInfo

	// Zoom, when non-nil, is the range streams declare.
	Zoom *capture.ZoomRange

	// RejectZoom makes Stream.SetZoom fail.
	RejectZoom bool

	// FrameImage is the frame streams serve. Defaults to a solid test card.
	FrameImage image.Image

	// FailFrame makes Stream.Frame fail.
	FailFrame bool

	// OpenGate, when non-nil, blocks Open until the channel is closed.
	// Tests use it to interleave a superseding Start or Stop mid-acquisition.
	OpenGate chan struct{}

	attempts []capture.Facing
	streams  []*Stream
}

// New returns a device with two enumerable cameras and no zoom.
func New() *Device {
	return &Device{
		Inputs: []capture.DeviceInfo{
			{ID: "cam0", Label: "Back Camera", Facing: capture.FacingEnvironment},
			{ID: "cam1", Label: "Front Camera", Facing: capture.FacingUser},
		},
	}
}

func (d *Device) Open(ctx context.Context, facing capture.Facing) (capture.Stream, error) {
	d.mu.Lock()
	d.attempts = append(d.attempts, facing)
	gate := d.OpenGate
	d.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if facing == capture.FacingEnvironment && d.FailEnvironment {
		return nil, fmt.Errorf("no device with facing %q", facing)
	}
	if facing == capture.FacingUser && d.FailUser {
		return nil, fmt.Errorf("no device with facing %q", facing)
	}

	s := &Stream{dev: d, facing: facing}
	d.streams = append(d.streams, s)
	return s, nil
}

func (d *Device) Enumerate(ctx context.Context) ([]capture.DeviceInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailEnumerate {
		return nil, fmt.Errorf("enumeration not permitted")
	}
	return append([]capture.DeviceInfo(nil), d.Inputs...), nil
}

// Attempts returns every facing passed to Open, in order.
func (d *Device) Attempts() []capture.Facing {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]capture.Facing(nil), d.attempts...)
}

// OpenStreams counts streams that have not been closed.
func (d *Device) OpenStreams() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, s := range d.streams {
		if !s.closed {
			n++
		}
	}
	return n
}

// Stream is the live stream handed out by Device.Open.
type Stream struct {
	dev    *Device
	facing capture.Facing
	mu     sync.Mutex
	closed bool
	level  float64
}

func (s *Stream) Frame(ctx context.Context) (image.Image, error) {
	s.dev.mu.Lock()
	img := s.dev.FrameImage
	fail := s.dev.FailFrame
	s.dev.mu.Unlock()

	if fail {
		return nil, fmt.Errorf("frame not ready")
	}
	if img == nil {
		img = testCard()
	}
	return img, nil
}

func (s *Stream) ZoomRange() (capture.ZoomRange, bool) {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if s.dev.Zoom == nil {
		return capture.ZoomRange{}, false
	}
	return *s.dev.Zoom, true
}

func (s *Stream) SetZoom(level float64) error {
	s.dev.mu.Lock()
	reject := s.dev.RejectZoom
	s.dev.mu.Unlock()
	if reject {
		return fmt.Errorf("zoom constraint rejected")
	}
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
	return nil
}

// Level returns the last level accepted by SetZoom.
func (s *Stream) Level() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *Stream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func testCard() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	c := color.RGBA{R: 0x3a, G: 0x7c, B: 0xa5, A: 0xff}
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
