// ABOUTME: Ordered surface collection with tiling and geometry routing
// ABOUTME: Creates/destroys surfaces on resize and routes fills across seams
package render

import (
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

// Peaks holds one amplitude series per channel.
type Peaks [][]float64

// SingleChannel wraps one series as single-channel peak input.
func SingleChannel(series []float64) Peaks {
	return Peaks{series}
}

// SurfaceSet partitions a waveform of arbitrary width across a bounded
// number of fixed-maximum-width surfaces and routes rasterization to
// the subset of surfaces a draw touches.
//
// All public operations are safe for concurrent use; rasterization is
// serialized on one mutex so each surface's pixel store is mutated by
// exactly one goroutine at a time.
type SurfaceSet struct {
	mu sync.Mutex

	id     string
	params Params

	overlap   int     // seam overlap between adjacent surfaces, device px
	halfPixel float64

	totalWidth int // device px
	height     int // total device px across all channel bands

	surfaces []*Surface

	progressPx int // progress overlay reveal width, device px
	viewOffset int // left edge of the visible viewport, device px

	// Durable zoom-fallback baseline, one decoded image per surface of
	// the tiling it was captured under. Lefts/widths/total record that
	// tiling so a stretch restore can map it onto a different one.
	backupWave     []*gg.ImageBuf
	backupProgress []*gg.ImageBuf
	backupLefts    []int
	backupWidths   []int
	backupTotal    int

	scheduler *redrawScheduler

	// gen invalidates deferred redraws scheduled before a resize/clear.
	gen uint64

	closed bool
}

// New creates a SurfaceSet with the given parameters. Zero-valued
// fields default as documented on Params. No surfaces exist until the
// first Resize.
func New(params Params) (*SurfaceSet, error) {
	p := params.withDefaults()
	s := &SurfaceSet{
		id:        uuid.New().String(),
		params:    p,
		overlap:   overlapFor(p.PixelRatio),
		halfPixel: halfPixelFor(p.PixelRatio),
		height:    devicePx(p.Height, p.PixelRatio),
		scheduler: newRedrawScheduler(),
	}
	return s, nil
}

// ID returns the set's unique identifier, used in logs and export names.
func (s *SurfaceSet) ID() string { return s.id }

// Resize recomputes the required surface count for the total width,
// creates or destroys surfaces to match, reassigns every surface's
// left offset and owned fraction, and clears all content. Both
// arguments are device pixels; heightPx spans all channel bands.
// Calling twice with identical arguments is a no-op.
func (s *SurfaceSet) Resize(totalWidthPx, heightPx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.resizeLocked(totalWidthPx, heightPx)
}

func (s *SurfaceSet) resizeLocked(totalWidth, height int) error {
	required := requiredSurfaces(totalWidth, s.params.MaxSurfaceWidth, s.overlap)
	if totalWidth == s.totalWidth && height == s.height && len(s.surfaces) == required {
		return nil
	}

	s.gen++
	s.scheduler.cancelAll()

	withProgress := s.params.ProgressColor != nil
	for len(s.surfaces) < required {
		surf, err := newSurface(s.params.Factory, 1, 1, withProgress, s.params.Vertical, s.halfPixel)
		if err != nil {
			return err
		}
		s.surfaces = append(s.surfaces, surf)
	}
	for len(s.surfaces) > required {
		tail := s.surfaces[len(s.surfaces)-1]
		tail.destroy()
		s.surfaces = s.surfaces[:len(s.surfaces)-1]
	}

	s.totalWidth = totalWidth
	s.height = height

	maxWidth := s.params.MaxSurfaceWidth
	for i, surf := range s.surfaces {
		left := i * maxWidth
		width := maxWidth + s.overlap
		if i == required-1 {
			width = totalWidth - maxWidth*(required-1)
		}
		start := float64(left) / float64(totalWidth)
		end := math.Min(start+float64(width)/float64(totalWidth), 1)
		if err := surf.updateDimensions(left, start, end, width, height); err != nil {
			return err
		}
		if err := surf.setFillStyles(s.params.WaveColor, s.params.ProgressColor); err != nil {
			return err
		}
		surf.clear()
	}

	s.progressPx = clampInt(s.progressPx, 0, totalWidth)
	Logger().Debug("surface set resized",
		"set", s.id, "width", totalWidth, "height", height, "surfaces", required)
	return nil
}

// beginRenderLocked wipes the pixel stores ahead of a fresh
// rasterization pass. Pending deferred redraws are left in place so a
// re-schedule for the same surface supersedes them; the generation
// bump invalidates any that fire for a surface the new pass skips.
func (s *SurfaceSet) beginRenderLocked() {
	s.gen++
	for _, surf := range s.surfaces {
		surf.clear()
	}
}

// Clear resets every surface to fully transparent and cancels any
// pending deferred redraws.
func (s *SurfaceSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.scheduler.cancelAll()
	for _, surf := range s.surfaces {
		surf.clear()
	}
}

// FillRect routes a filled rectangle to the contiguous range of
// surfaces its x-span touches, forwarding only positive-area clipped
// sub-rectangles. channelIndex selects per-channel styles when
// configured.
func (s *SurfaceSet) FillRect(x, y, w, h, radius float64, channelIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.fillRectLocked(x, y, w, h, radius, channelIndex)
}

func (s *SurfaceSet) fillRectLocked(x, y, w, h, radius float64, channelIndex int) error {
	maxWidth := float64(s.params.MaxSurfaceWidth)
	startSurface := int(math.Floor(x / maxWidth))
	endSurface := int(math.Min(math.Ceil((x+w)/maxWidth)+1, float64(len(s.surfaces))))

	for i := startSurface; i < endSurface; i++ {
		if i < 0 || i >= len(s.surfaces) {
			continue
		}
		surf := s.surfaces[i]
		left := float64(surf.left)

		x1 := math.Max(x, left)
		x2 := math.Min(x+w, left+float64(surf.width))
		if x1 >= x2 {
			continue
		}
		if err := s.applyChannelStyles(surf, channelIndex); err != nil {
			return err
		}
		if err := surf.fillRect(x1-left, y, x2-x1, h, radius); err != nil {
			return err
		}
	}
	return nil
}

// applyChannelStyles installs the channel's color overrides, falling
// back to the set-wide styles.
func (s *SurfaceSet) applyChannelStyles(surf *Surface, channelIndex int) error {
	wave := s.params.WaveColor
	progress := s.params.ProgressColor
	if cc, ok := s.params.SplitChannelOptions.ChannelColors[channelIndex]; ok {
		if cc.WaveColor != nil {
			wave = cc.WaveColor
		}
		if cc.ProgressColor != nil {
			progress = cc.ProgressColor
		}
	}
	return surf.setFillStyles(wave, progress)
}

// ScrollTo moves the left edge of the visible viewport, which controls
// redraw stagger priority for subsequent line renders.
func (s *SurfaceSet) ScrollTo(offsetPx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewOffset = clampInt(offsetPx, 0, maxInt(s.totalWidth-s.viewportWidthLocked(), 0))
}

// viewportWidthLocked returns the visible window width; zero config
// means the whole waveform is on screen.
func (s *SurfaceSet) viewportWidthLocked() int {
	if s.params.ViewportWidth > 0 {
		return s.params.ViewportWidth
	}
	return s.totalWidth
}

// staggerPriority is 0 for a surface intersecting the viewport, else
// proportional to how many viewport widths away its rectangle lies.
func (s *SurfaceSet) staggerPriority(surf *Surface) int {
	vw := s.viewportWidthLocked()
	if vw <= 0 {
		return 0
	}
	viewStart := s.viewOffset
	viewEnd := s.viewOffset + vw

	surfStart := surf.left
	surfEnd := surf.left + surf.width
	if surfEnd > viewStart && surfStart < viewEnd {
		return 0
	}

	var distance int
	if surfStart >= viewEnd {
		distance = surfStart - viewEnd
	} else {
		distance = viewStart - surfEnd
	}
	return int(math.Ceil(float64(distance) / float64(vw)))
}

// finishSurfaceDraw marks a surface drawn, refreshes its snapshot
// caches, and advances the backup completion signal. A failed capture
// leaves the surface undrawn so backup capture keeps waiting.
func (s *SurfaceSet) finishSurfaceDraw(surf *Surface) {
	if err := surf.captureSnapshots(); err != nil {
		Logger().Warn("snapshot capture failed", "set", s.id, "err", err)
		return
	}
	surf.drawn = true
	s.maybeCaptureBackup()
}

// maybeCaptureBackup materializes the zoom-fallback baseline once every
// surface reports drawn and every snapshot holds non-empty content.
// This is the completion signal replacing a readiness poll: a surface
// that never finishes simply never triggers capture.
func (s *SurfaceSet) maybeCaptureBackup() {
	if len(s.surfaces) == 0 {
		return
	}
	for _, surf := range s.surfaces {
		if !surf.drawn || len(surf.waveSnap) == 0 {
			return
		}
	}

	wave := make([]*gg.ImageBuf, len(s.surfaces))
	progress := make([]*gg.ImageBuf, len(s.surfaces))
	lefts := make([]int, len(s.surfaces))
	widths := make([]int, len(s.surfaces))
	for i, surf := range s.surfaces {
		img, err := decodeSnapshot(surf.waveSnap)
		if err != nil {
			Logger().Warn("backup decode failed", "set", s.id, "err", err)
			return
		}
		wave[i] = img
		if len(surf.progressSnap) > 0 {
			pimg, err := decodeSnapshot(surf.progressSnap)
			if err != nil {
				Logger().Warn("backup decode failed", "set", s.id, "err", err)
				return
			}
			progress[i] = pimg
		}
		lefts[i] = surf.left
		widths[i] = surf.width
	}
	s.backupWave = wave
	s.backupProgress = progress
	s.backupLefts = lefts
	s.backupWidths = widths
	s.backupTotal = s.totalWidth
	Logger().Debug("backup snapshot captured", "set", s.id, "surfaces", len(widths))
}

// HasBackup reports whether a zoom-fallback baseline exists.
func (s *SurfaceSet) HasBackup() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.backupWave) > 0
}

// Flush runs any pending deferred redraws immediately. Useful before a
// synchronous export.
func (s *SurfaceSet) Flush() {
	s.scheduler.flush()
}

// Stats returns redraw scheduling counters.
func (s *SurfaceSet) Stats() SchedulerStats {
	return s.scheduler.Stats()
}

// SurfaceCount returns the number of live surfaces.
func (s *SurfaceSet) SurfaceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.surfaces)
}

// Surfaces returns the live surfaces ordered by left offset.
func (s *SurfaceSet) Surfaces() []*Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Surface, len(s.surfaces))
	copy(out, s.surfaces)
	return out
}

// Width returns the total device-pixel width.
func (s *SurfaceSet) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalWidth
}

// Height returns the total device-pixel height across channel bands.
func (s *SurfaceSet) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

// Close destroys all surfaces and cancels pending redraws. Idempotent.
func (s *SurfaceSet) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.gen++
	surfaces := s.surfaces
	s.surfaces = nil
	s.backupWave = nil
	s.backupProgress = nil
	s.backupLefts = nil
	s.backupWidths = nil
	s.backupTotal = 0
	s.mu.Unlock()

	s.scheduler.cancelAll()
	for _, surf := range surfaces {
		surf.destroy()
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
