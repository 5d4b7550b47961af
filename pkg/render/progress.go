// ABOUTME: Progress overlay reveal state
// ABOUTME: Width-driven, fully decoupled from peak rasterization
package render

// UpdateProgress reveals the progress overlay up to positionPx device
// pixels. A no-op when no progress overlay is configured.
func (s *SurfaceSet) UpdateProgress(positionPx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.params.ProgressColor == nil {
		return
	}
	s.progressPx = clampInt(positionPx, 0, s.totalWidth)
}

// ProgressWidth returns the current progress reveal width in device
// pixels.
func (s *SurfaceSet) ProgressWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressPx
}
