// Package slider implements the before/after comparison slider used in the
// alert detail view
package slider

// Slider tracks the normalized split position between the "before" and
// "after" images. Position 0 shows all of "after", position 1 all of
// "before". The position persists between drag sessions.
type Slider struct {
	position float64
}

// New creates a slider with the split at the midpoint
func New() *Slider {
	return &Slider{position: 0.5}
}

// Position returns the current split position in [0, 1]
func (s *Slider) Position() float64 {
	return s.position
}

// ClipInset returns the inset fraction (0-100) applied to the overlay
// "before" image
func (s *Slider) ClipInset() float64 {
	return (1 - s.position) * 100
}

// DragSession tracks one pointer drag bounded to a measured container.
// It begins on pointer-down inside the container and ends on pointer-up
// anywhere; every move recomputes the position with no debouncing. A new
// pointer-down while a session is live simply restarts tracking.
type DragSession struct {
	slider         *Slider
	containerLeft  float64
	containerWidth float64
}

// StartDrag begins a drag session against a container measured at drag
// start. The width must be positive; a degenerate container yields no
// session.
func (s *Slider) StartDrag(containerLeft, containerWidth float64) *DragSession {
	if containerWidth <= 0 {
		return nil
	}
	return &DragSession{
		slider:         s,
		containerLeft:  containerLeft,
		containerWidth: containerWidth,
	}
}

// Move recomputes the position from the pointer's horizontal coordinate,
// clamped to the container, and returns the new position
func (d *DragSession) Move(pointerX float64) float64 {
	if !d.Active() {
		return 0
	}
	raw := (pointerX - d.containerLeft) / d.containerWidth
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}
	d.slider.position = raw
	return raw
}

// End releases the session. The position is retained until the next session.
func (d *DragSession) End() {
	d.slider = nil
}

// Active reports whether the session still owns the slider
func (d *DragSession) Active() bool {
	return d != nil && d.slider != nil
}
