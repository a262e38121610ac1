package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parth3300/portfolio/internal/catalog"
	"github.com/parth3300/portfolio/internal/widget"
)

const sessionCookie = "portfolio_session"

// visitor is the UI state of one browser: the hire-me dropdown, the open
// service modal, the toast and one carousel per project.
type visitor struct {
	mu        sync.Mutex
	hire      widget.Dropdown
	modal     widget.Modal[catalog.Service]
	carousels map[string]*widget.Carousel
	toast     *widget.Notification
	lastSeen  time.Time
}

// carousel returns the visitor's carousel for p, creating it on first use.
// Callers hold v.mu.
func (v *visitor) carousel(p catalog.Project) *widget.Carousel {
	if c, ok := v.carousels[p.Slug]; ok {
		return c
	}
	c, err := widget.NewCarousel(len(p.Images))
	if err != nil {
		// The catalog rejects projects without images.
		panic(err)
	}
	v.carousels[p.Slug] = c
	return c
}

// reset puts the visitor back to how a fresh page load finds it. Callers
// hold v.mu.
func (v *visitor) reset() {
	v.hire.Close()
	v.modal.Close()
	v.toast.Close()
	v.carousels = make(map[string]*widget.Carousel)
}

type sessions struct {
	mu       sync.Mutex
	clock    widget.Clock
	ttl      time.Duration
	toastFor time.Duration
	max      int
	visitors map[string]*visitor
}

func newSessions(clock widget.Clock, ttl, toastFor time.Duration, maxVisitors int) *sessions {
	if clock == nil {
		clock = widget.SystemClock
	}
	return &sessions{
		clock:    clock,
		ttl:      ttl,
		toastFor: toastFor,
		max:      maxVisitors,
		visitors: make(map[string]*visitor),
	}
}

func (s *sessions) newVisitor(now time.Time) *visitor {
	return &visitor{
		carousels: make(map[string]*widget.Carousel),
		toast:     widget.NewNotification(s.clock, s.toastFor),
		lastSeen:  now,
	}
}

// lookupLocked returns the stored visitor for the request's cookie and
// marks it as seen.
func (s *sessions) lookupLocked(c *gin.Context, now time.Time) (*visitor, bool) {
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	v, ok := s.visitors[id]
	if ok {
		v.lastSeen = now
	}
	return v, ok
}

// issue returns the visitor behind the request's session cookie, starting
// a new session when the cookie is missing, malformed or expired. Only
// full page loads issue sessions.
func (s *sessions) issue(c *gin.Context) *visitor {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if v, ok := s.lookupLocked(c, now); ok {
		return v
	}

	if s.max > 0 && len(s.visitors) >= s.max {
		s.evictOldestLocked()
	}
	id := uuid.NewString()
	v := s.newVisitor(now)
	s.visitors[id] = v
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return v
}

// lookup returns the visitor behind the request's session cookie. Without
// a live session it hands out a transient visitor that is never stored;
// stored reports which one the caller got.
func (s *sessions) lookup(c *gin.Context) (v *visitor, stored bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if v, ok := s.lookupLocked(c, now); ok {
		return v, true
	}
	return s.newVisitor(now), false
}

func (s *sessions) evictOldestLocked() {
	var (
		oldestID string
		oldest   *visitor
	)
	for id, v := range s.visitors {
		if oldest == nil || v.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, v
		}
	}
	if oldest != nil {
		oldest.toast.Close()
		delete(s.visitors, oldestID)
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// sweep forgets visitors idle for longer than the ttl.
func (s *sessions) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock.Now().Add(-s.ttl)
	removed := 0
	for id, v := range s.visitors {
		if v.lastSeen.Before(cutoff) {
			v.toast.Close()
			delete(s.visitors, id)
			removed++
		}
	}
	return removed
}

func (s *sessions) run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				log.Printf("Sessions: dropped %d idle visitors", n)
			}
		}
	}
}
