// Package dircam implements capture.Device on top of image files, for
// running the app on machines without camera hardware. Each immediate
// subdirectory of the root plays one camera and is named after the facing it
// serves ("environment", "user"); its image files are served as frames in
// name order. Zoom is emulated digitally with a center crop.
package dircam

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/Rockhound-GO/Attic-Inventory/internal/capture"
)

var frameExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}

// Device serves frames from a directory tree.
type Device struct {
	root string
}

// New creates a device rooted at dir.
func New(dir string) (*Device, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("camera directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("camera directory %s is not a directory", dir)
	}
	return &Device{root: dir}, nil
}

func (d *Device) Open(ctx context.Context, facing capture.Facing) (capture.Stream, error) {
	dir := filepath.Join(d.root, string(facing))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("no %s camera: %w", facing, err)
	}

	var frames []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if frameExts[strings.ToLower(filepath.Ext(e.Name()))] {
			frames = append(frames, filepath.Join(dir, e.Name()))
		}
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames in %s", dir)
	}
	sort.Strings(frames)

	return &Stream{frames: frames, level: 1}, nil
}

func (d *Device) Enumerate(ctx context.Context) ([]capture.DeviceInfo, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("enumerate cameras: %w", err)
	}

	var infos []capture.DeviceInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		facing := capture.Facing(e.Name())
		if facing != capture.FacingEnvironment && facing != capture.FacingUser {
			continue
		}
		infos = append(infos, capture.DeviceInfo{
			ID:     e.Name(),
			Label:  fmt.Sprintf("Directory camera (%s)", e.Name()),
			Facing: facing,
		})
	}
	return infos, nil
}

// Stream cycles through the directory's image files.
type Stream struct {
	mu     sync.Mutex
	frames []string
	next   int
	level  float64
	closed bool
}

func (s *Stream) Frame(ctx context.Context) (image.Image, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, fmt.Errorf("stream closed")
	}
	path := s.frames[s.next%len(s.frames)]
	s.next++
	level := s.level
	s.mu.Unlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read frame %s: %w", path, err)
	}

	if level > 1 {
		// digital zoom: crop the center 1/level of the frame, then scale
		// back to native resolution
		b := img.Bounds()
		w := int(float64(b.Dx()) / level)
		h := int(float64(b.Dy()) / level)
		if w > 0 && h > 0 {
			img = imaging.Resize(imaging.CropCenter(img, w, h), b.Dx(), b.Dy(), imaging.Lanczos)
		}
	}
	return img, nil
}

func (s *Stream) ZoomRange() (capture.ZoomRange, bool) {
	return capture.ZoomRange{Min: 1, Max: 4, Step: 0.5, Current: 1}, true
}

func (s *Stream) SetZoom(level float64) error {
	if level < 1 || level > 4 {
		return fmt.Errorf("zoom level %.1f out of range [1, 4]", level)
	}
	s.mu.Lock()
	s.level = level
	s.mu.Unlock()
	return nil
}

func (s *Stream) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
