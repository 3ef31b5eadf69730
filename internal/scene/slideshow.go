package scene

import "time"

// Interval is how long a slide stays up before auto-advancing.
const Interval = 5 * time.Second

// Slideshow tracks the current slide and the auto-advance timer.
//
// The timer itself lives with the caller (a tea.Tick in the TUI). Each
// restart bumps a generation number; a tick carrying an older generation is
// stale and ignored, which is how manual navigation restarts the timer.
type Slideshow struct {
	slides []Slide
	index  int
	gen    int
}

func NewSlideshow(s []Slide) *Slideshow {
	if len(s) == 0 {
		s = Slides()
	}
	return &Slideshow{slides: s}
}

func (s *Slideshow) Len() int       { return len(s.slides) }
func (s *Slideshow) Index() int     { return s.index }
func (s *Slideshow) Current() Slide { return s.slides[s.index] }
func (s *Slideshow) Caption() string {
	return s.Current().Caption()
}

// Show jumps to slide i, wrapping out-of-range indexes to the other end.
func (s *Slideshow) Show(i int) {
	switch {
	case i < 0:
		i = len(s.slides) - 1
	case i >= len(s.slides):
		i = 0
	}
	s.index = i
}

func (s *Slideshow) Next() { s.Show(s.index + 1) }
func (s *Slideshow) Prev() { s.Show(s.index - 1) }

// Restart invalidates outstanding ticks and returns the generation the
// next tick must carry.
func (s *Slideshow) Restart() int {
	s.gen++
	return s.gen
}

// Advance handles a timer tick. It moves to the next slide only when gen is
// current.
func (s *Slideshow) Advance(gen int) bool {
	if gen != s.gen {
		return false
	}
	s.Next()
	return true
}

// HandleKey applies arrow-key navigation. Keys are ignored while a modal is
// open or a text input has focus. It reports whether the slide changed; the
// caller should then Restart the timer.
func (s *Slideshow) HandleKey(key string, modalOpen, inputFocused bool) bool {
	if modalOpen || inputFocused {
		return false
	}
	switch key {
	case "right":
		s.Next()
	case "left":
		s.Prev()
	default:
		return false
	}
	return true
}
