// Package capture drives a camera device through a small lifecycle
// (Idle → Streaming → Captured, with Error reachable from any start) and
// turns a live frame into a JPEG artifact. Optional capabilities (a second
// camera, a zoom range) are probed best-effort after each successful start
// and exposed as flags; their absence is a degraded feature, never a fault.
package capture

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// State is the pipeline's lifecycle state.
type State string

const (
	StateIdle      State = "idle"
	StateStreaming State = "streaming"
	StateCaptured  State = "captured"
	StateError     State = "error"
)

// ErrCameraUnavailable is the caller-facing message shown when no camera
// could be acquired.
const ErrCameraUnavailable = "Could not access the camera. Please check permissions."

// jpegQuality is the fixed quality factor for captured artifacts.
const jpegQuality = 90

// ZoomStatus is the probed zoom capability plus the current level.
type ZoomStatus struct {
	Available bool
	Min       float64
	Max       float64
	Step      float64
	Level     float64
}

// Pipeline owns at most one live stream at a time. Every Start supersedes
// the previous session: a new session token is issued first, and any
// completion that arrives under a stale token is discarded so a released
// stream can never be resurrected.
type Pipeline struct {
	mu     sync.Mutex
	dev    Device
	logger *slog.Logger

	state   State
	errMsg  string
	stream  Stream
	session uuid.UUID
	facing  Facing

	canSwitch bool
	zoom      ZoomStatus
	photo     []byte
}

// New creates an idle pipeline on top of dev.
func New(dev Device, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		dev:    dev,
		logger: logger,
		state:  StateIdle,
		facing: FacingEnvironment,
	}
}

// Start tears down any existing session, acquires a stream for the requested
// facing, and transitions to Streaming. When the environment camera cannot
// be acquired it retries exactly once with the user camera before giving up.
// Both attempts failing puts the pipeline in Error with a caller-facing
// message.
func (p *Pipeline) Start(ctx context.Context, facing Facing) {
	p.mu.Lock()
	token := uuid.New()
	p.session = token
	p.teardownLocked()
	p.state = StateIdle
	p.mu.Unlock()

	stream, got, err := p.acquire(ctx, facing)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session != token {
		// A later Start or Stop superseded this acquisition.
		if stream != nil {
			if cerr := stream.Close(); cerr != nil {
				p.logger.Debug("failed to close superseded stream", "error", cerr)
			}
		}
		p.logger.Debug("discarded stale camera acquisition", "facing", string(facing))
		return
	}

	if err != nil {
		p.logger.Error("camera acquisition failed", "facing", string(facing), "error", err)
		p.state = StateError
		p.errMsg = ErrCameraUnavailable
		return
	}

	p.stream = stream
	p.facing = got
	p.state = StateStreaming
	p.errMsg = ""
	p.probeLocked(ctx)
	p.logger.Info("camera streaming",
		"facing", string(got),
		"can_switch", p.canSwitch,
		"can_zoom", p.zoom.Available)
}

// acquire opens a stream, applying the single environment→user fallback.
func (p *Pipeline) acquire(ctx context.Context, facing Facing) (Stream, Facing, error) {
	stream, err := p.dev.Open(ctx, facing)
	if err == nil {
		return stream, facing, nil
	}
	if facing != FacingEnvironment {
		return nil, facing, err
	}

	p.logger.Warn("rear camera unavailable, falling back to front camera", "error", err)
	stream, err = p.dev.Open(ctx, FacingUser)
	if err != nil {
		return nil, FacingUser, err
	}
	return stream, FacingUser, nil
}

// probeLocked inspects optional capabilities after a successful start. Both
// probes are best-effort: failure degrades the feature, never the state.
func (p *Pipeline) probeLocked(ctx context.Context) {
	p.canSwitch = false
	p.zoom = ZoomStatus{}

	infos, err := p.dev.Enumerate(ctx)
	if err != nil {
		p.logger.Debug("device enumeration failed, camera switching disabled", "error", err)
	} else {
		p.canSwitch = len(infos) > 1
	}

	if r, ok := p.stream.ZoomRange(); ok && r.Max > r.Min {
		level := r.Current
		if level == 0 {
			level = 1
		}
		p.zoom = ZoomStatus{Available: true, Min: r.Min, Max: r.Max, Step: r.Step, Level: level}
	}
}

// SetZoom applies level to the active stream. Valid only while streaming
// with zoom available; a device rejection is logged, not surfaced.
func (p *Pipeline) SetZoom(level float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateStreaming || !p.zoom.Available || p.stream == nil {
		return
	}
	if err := p.stream.SetZoom(level); err != nil {
		p.logger.Debug("zoom level rejected by device", "level", level, "error", err)
		return
	}
	p.zoom.Level = level
}

// SwitchCamera flips the facing and restarts the stream, inheriting Start's
// fallback behavior.
func (p *Pipeline) SwitchCamera(ctx context.Context) {
	p.mu.Lock()
	facing := p.facing.Flip()
	p.mu.Unlock()
	p.Start(ctx, facing)
}

// CapturePhoto grabs the current frame, encodes it as a fixed-quality JPEG,
// and transitions to Captured, releasing the device. Valid only while
// streaming; a missing frame leaves the pipeline streaming with no result.
func (p *Pipeline) CapturePhoto(ctx context.Context) {
	p.mu.Lock()
	if p.state != StateStreaming || p.stream == nil {
		p.mu.Unlock()
		return
	}
	stream := p.stream
	token := p.session
	p.mu.Unlock()

	frame, err := stream.Frame(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session != token || p.state != StateStreaming {
		return
	}
	if err != nil || frame == nil {
		p.logger.Warn("no frame available, capture skipped", "error", err)
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, frame, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		p.logger.Error("failed to encode captured frame", "error", err)
		return
	}

	p.photo = buf.Bytes()
	p.state = StateCaptured
	p.teardownLocked()
	p.logger.Info("photo captured", "bytes", len(p.photo))
}

// Retake discards the captured artifact and restarts the stream with the
// last-used facing.
func (p *Pipeline) Retake(ctx context.Context) {
	p.mu.Lock()
	p.photo = nil
	facing := p.facing
	p.mu.Unlock()
	p.Start(ctx, facing)
}

// Stop releases the device and clears capability flags. Callable from any
// state and idempotent. It also invalidates any in-flight acquisition.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.session = uuid.New()
	p.teardownLocked()
	if p.state == StateStreaming {
		p.state = StateIdle
	}
}

// teardownLocked closes the stream and clears the capability flags. The
// caller holds p.mu and decides what happens to p.state.
func (p *Pipeline) teardownLocked() {
	if p.stream != nil {
		if err := p.stream.Close(); err != nil {
			p.logger.Debug("failed to close stream", "error", err)
		}
		p.stream = nil
	}
	p.canSwitch = false
	p.zoom = ZoomStatus{}
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the caller-facing error message, empty unless in Error.
func (p *Pipeline) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// Photo returns the captured JPEG artifact, nil before a capture.
func (p *Pipeline) Photo() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.photo
}

// Facing returns the facing of the current or most recent session.
func (p *Pipeline) Facing() Facing {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.facing
}

// CanSwitchCamera reports whether more than one video input was enumerated.
func (p *Pipeline) CanSwitchCamera() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canSwitch
}

// CanZoom reports whether the active stream declared a usable zoom range.
func (p *Pipeline) CanZoom() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.zoom.Available
}

// Zoom returns the probed zoom capability and current level.
func (p *Pipeline) Zoom() ZoomStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.zoom
}
