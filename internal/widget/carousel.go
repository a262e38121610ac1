package widget

import (
	"errors"
	"fmt"
)

// Direction is the way the next slide enters. It only drives the
// slide-in transition.
type Direction int

const (
	Backward Direction = iota
	Forward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

var (
	ErrEmptyCarousel   = errors.New("carousel needs at least one image")
	ErrIndexOutOfRange = errors.New("carousel index out of range")
)

// Carousel cycles through a fixed number of images.
// The zero value is not usable; use NewCarousel.
type Carousel struct {
	index int
	n     int
	dir   Direction
}

// NewCarousel starts at the first of n images.
func NewCarousel(n int) (*Carousel, error) {
	if n < 1 {
		return nil, ErrEmptyCarousel
	}
	return &Carousel{n: n, dir: Backward}, nil
}

func (c *Carousel) Index() int           { return c.index }
func (c *Carousel) Len() int             { return c.n }
func (c *Carousel) Direction() Direction { return c.dir }

// Next advances one image, wrapping past the last.
func (c *Carousel) Next() {
	c.dir = Forward
	c.index = (c.index + 1) % c.n
}

// Prev steps back one image, wrapping before the first.
func (c *Carousel) Prev() {
	c.dir = Backward
	c.index = (c.index - 1 + c.n) % c.n
}

// GoTo jumps to image i. Jumping to the current image keeps the direction.
func (c *Carousel) GoTo(i int) error {
	if i < 0 || i >= c.n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, c.n)
	}
	switch {
	case i > c.index:
		c.dir = Forward
	case i < c.index:
		c.dir = Backward
	}
	c.index = i
	return nil
}

// Offset places image i relative to the current one: -1 left of it,
// 0 showing, 1 right of it.
func (c *Carousel) Offset(i int) int {
	switch {
	case i == c.index:
		return 0
	case i < c.index:
		return -1
	default:
		return 1
	}
}
