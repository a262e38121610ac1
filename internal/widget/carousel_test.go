package widget

import (
	"errors"
	"testing"
)

func TestNewCarouselRejectsEmpty(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := NewCarousel(n); !errors.Is(err, ErrEmptyCarousel) {
			t.Errorf("NewCarousel(%d): expected ErrEmptyCarousel, got %v", n, err)
		}
	}
}

func TestCarouselThreeImageScenario(t *testing.T) {
	c, err := NewCarousel(3)
	if err != nil {
		t.Fatalf("NewCarousel: %v", err)
	}
	if c.Index() != 0 {
		t.Fatalf("expected start index 0, got %d", c.Index())
	}

	for _, want := range []int{1, 2, 0} {
		c.Next()
		if c.Index() != want {
			t.Errorf("expected index %d, got %d", want, c.Index())
		}
		if c.Direction() != Forward {
			t.Errorf("expected forward after Next, got %s", c.Direction())
		}
	}
}

func TestCarouselNextFullCycle(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for k := 0; k < n; k++ {
			c, _ := NewCarousel(n)
			if err := c.GoTo(k); err != nil {
				t.Fatalf("GoTo(%d): %v", k, err)
			}
			for i := 0; i < n; i++ {
				c.Next()
			}
			if c.Index() != k {
				t.Errorf("n=%d k=%d: expected index back at %d, got %d", n, k, k, c.Index())
			}
		}
	}
}

func TestCarouselPrevNextInverse(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for k := 0; k < n; k++ {
			c, _ := NewCarousel(n)
			_ = c.GoTo(k)

			c.Prev()
			c.Next()
			if c.Index() != k {
				t.Errorf("n=%d: Prev+Next from %d landed on %d", n, k, c.Index())
			}

			c.Next()
			c.Prev()
			if c.Index() != k {
				t.Errorf("n=%d: Next+Prev from %d landed on %d", n, k, c.Index())
			}
		}
	}
}

func TestCarouselPrevWraps(t *testing.T) {
	c, _ := NewCarousel(3)
	c.Prev()
	if c.Index() != 2 {
		t.Errorf("expected wrap to 2, got %d", c.Index())
	}
	if c.Direction() != Backward {
		t.Errorf("expected backward after Prev, got %s", c.Direction())
	}
}

func TestCarouselGoToDirection(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		startDir Direction
		target   int
		want     Direction
	}{
		{"jump ahead", 0, Backward, 2, Forward},
		{"jump back", 2, Forward, 1, Backward},
		{"same index keeps forward", 1, Forward, 1, Forward},
		{"same index keeps backward", 1, Backward, 1, Backward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Carousel{n: 3, index: tt.start, dir: tt.startDir}
			if err := c.GoTo(tt.target); err != nil {
				t.Fatalf("GoTo: %v", err)
			}
			if c.Index() != tt.target {
				t.Errorf("expected index %d, got %d", tt.target, c.Index())
			}
			if c.Direction() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, c.Direction())
			}
		})
	}
}

func TestCarouselGoToOutOfRange(t *testing.T) {
	c, _ := NewCarousel(3)
	c.Next()

	for _, i := range []int{-1, 3, 10} {
		if err := c.GoTo(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("GoTo(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
	if c.Index() != 1 || c.Direction() != Forward {
		t.Errorf("rejected GoTo changed state: index=%d dir=%s", c.Index(), c.Direction())
	}
}

func TestCarouselOffset(t *testing.T) {
	c, _ := NewCarousel(3)
	c.Next()
	if c.Offset(0) != -1 || c.Offset(1) != 0 || c.Offset(2) != 1 {
		t.Errorf("unexpected offsets: %d %d %d", c.Offset(0), c.Offset(1), c.Offset(2))
	}
}
