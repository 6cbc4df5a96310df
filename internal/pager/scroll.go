package pager

import "math"

// ScrollModel tracks where a session's view sits over its scrollback and how
// far output-driven scrolling is allowed to run ahead of the reader.
//
// All values share one unit (a character row for a cell-based host). The pause
// limit is the furthest view extent (offset + viewport) the user has agreed to
// see; it only grows until ResetPauseLimit.
type ScrollModel struct {
	offset     int
	viewport   int
	content    int
	lineHeight int
	pauseLimit int
	padding    int
}

// NewScrollModel returns a model with an empty content area.
// A non-positive lineHeight is treated as 1.
func NewScrollModel(viewport, lineHeight int) *ScrollModel {
	if lineHeight <= 0 {
		lineHeight = 1
	}
	viewport = max(viewport, 0)
	return &ScrollModel{
		viewport:   viewport,
		lineHeight: lineHeight,
		pauseLimit: viewport,
	}
}

// Offset is the distance from the top of the content to the top of the view.
func (s *ScrollModel) Offset() int { return s.offset }

// ViewportHeight is the visible height.
func (s *ScrollModel) ViewportHeight() int { return s.viewport }

// ContentHeight is the total height of the scrollback content.
func (s *ScrollModel) ContentHeight() int { return s.content }

// LineHeight is the height of one text line.
func (s *ScrollModel) LineHeight() int { return s.lineHeight }

// PauseLimit is the furthest extent auto-scroll may currently reach.
func (s *ScrollModel) PauseLimit() int { return s.pauseLimit }

// Padding is blank scrollable space below the end of content, added when the
// reader jumps past it (the "page after EOF" of less). It shrinks as the view
// moves back into the content or new content fills it.
func (s *ScrollModel) Padding() int { return s.padding }

// MaxOffset is the largest valid offset: the view's bottom at the end of
// content plus padding.
func (s *ScrollModel) MaxOffset() int {
	return max(0, s.content+s.padding-s.viewport)
}

// Extent is the bottom edge of the view.
func (s *ScrollModel) Extent() int {
	return s.offset + s.viewport
}

// AtBottom reports whether the view shows the end of the content and padding.
func (s *ScrollModel) AtBottom() bool {
	return s.offset >= s.MaxOffset()
}

// SetContentHeight records the current content height. Padding shrinks as
// real content fills the space it reserved.
func (s *ScrollModel) SetContentHeight(h int) {
	h = max(h, 0)
	grew := h - s.content
	s.content = h
	if grew > 0 && s.padding > 0 {
		s.padding = max(0, s.padding-grew)
	}
	s.clamp()
}

// SetViewportHeight records a resize. The pause limit is content-relative and
// is left alone.
func (s *ScrollModel) SetViewportHeight(h int) {
	s.viewport = max(h, 0)
	s.clamp()
}

// Scroll moves the view by delta and reports whether the pause limit was
// extended. The requested extent is measured from the end of content when
// the view sits above it, so reading forward always grants new output.
func (s *ScrollModel) Scroll(delta int) (extended bool) {
	limit := max(s.Extent(), s.content) + delta
	if limit > s.pauseLimit {
		s.pauseLimit = limit
		extended = true
	}
	s.offset += delta
	s.clamp()
	return extended
}

// ScrollAbsolute jumps to pct percent of the content height. pct is clamped
// to [0,100]. The pause limit rises to cover the new view.
func (s *ScrollModel) ScrollAbsolute(pct float64) {
	pct = math.Max(0, math.Min(100, pct))
	top := int(math.Round(pct * float64(s.content) * 0.01))
	limit := top + s.viewport
	s.RaisePauseLimit(limit)
	s.padding = 0
	if limit > s.content {
		maxPad := max(0, s.viewport-s.lineHeight)
		s.padding = min(limit-s.content, maxPad)
	}
	s.offset = top
	s.clamp()
}

// Top scrolls to the start of the content.
func (s *ScrollModel) Top() {
	s.offset = 0
	s.clamp()
}

// Bottom scrolls so the end of content (and any padding) is visible.
func (s *ScrollModel) Bottom() {
	s.offset = s.MaxOffset()
}

// RaisePauseLimit moves the limit to at least limit. It never lowers it.
func (s *ScrollModel) RaisePauseLimit(limit int) {
	if limit > s.pauseLimit {
		s.pauseLimit = limit
	}
}

// AdjustPauseLimit grants a page of output past the current end of content.
// Used when the user types to the program: they have seen what they answer.
func (s *ScrollModel) AdjustPauseLimit() {
	s.RaisePauseLimit(s.content - s.lineHeight + s.viewport)
}

// ResetPauseLimit sets the limit to the current view extent. This is the only
// operation that may lower it.
func (s *ScrollModel) ResetPauseLimit() {
	s.pauseLimit = s.Extent()
	s.padding = 0
	s.clamp()
}

// clamp keeps the offset in range and drops padding the view no longer
// reaches.
func (s *ScrollModel) clamp() {
	if s.offset > s.MaxOffset() {
		s.offset = s.MaxOffset()
	}
	if s.offset < 0 {
		s.offset = 0
	}
	s.padding = min(s.padding, max(0, s.Extent()-s.content))
}
