package main

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parth3300/portfolio/internal/catalog"
	"github.com/parth3300/portfolio/internal/widget"
)

type serviceView struct {
	catalog.Service
	DescriptionHTML template.HTML
}

type slideView struct {
	catalog.Image
	Index  int
	Offset int
}

type carouselView struct {
	Slug      string
	Slides    []slideView
	Index     int
	Direction string
}

type projectView struct {
	catalog.Project
	OverviewHTML template.HTML
	Carousel     carouselView
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"buttonClass": func(variant, size string) string {
			return widget.Button{Variant: variant, Size: size}.Classes()
		},
		"button": widget.NewButton,
		"slideClass": func(offset int) string {
			switch {
			case offset < 0:
				return "slide slide-left"
			case offset > 0:
				return "slide slide-right"
			default:
				return "slide slide-active"
			}
		},
		"year": func() int { return time.Now().Year() },
	}
}

func newCarouselView(p catalog.Project, c *widget.Carousel) carouselView {
	slides := make([]slideView, len(p.Images))
	for i, img := range p.Images {
		slides[i] = slideView{Image: img, Index: i, Offset: c.Offset(i)}
	}
	return carouselView{
		Slug:      p.Slug,
		Slides:    slides,
		Index:     c.Index(),
		Direction: c.Direction().String(),
	}
}

func (s *server) modalView(v *visitor) *serviceView {
	svc, ok := v.modal.Selected()
	if !ok {
		return nil
	}
	return &serviceView{Service: svc, DescriptionHTML: s.serviceHTML[svc.Slug]}
}

func (s *server) email() string {
	if s.cfg.Email != "" {
		return s.cfg.Email
	}
	return s.cat.Profile.Email
}

// withVisitor runs fn with the request's visitor locked. A transient
// visitor has its toast timer stopped once fn returns.
func (s *server) withVisitor(c *gin.Context, fn func(v *visitor)) {
	v, stored := s.sessions.lookup(c)
	v.mu.Lock()
	defer v.mu.Unlock()
	if !stored {
		defer v.toast.Close()
	}
	fn(v)
}

func (s *server) handleIndex(c *gin.Context) {
	v := s.sessions.issue(c)
	v.mu.Lock()
	defer v.mu.Unlock()

	// A page load mounts every component afresh.
	v.reset()

	services := make([]serviceView, len(s.cat.Services))
	for i, svc := range s.cat.Services {
		services[i] = serviceView{Service: svc, DescriptionHTML: s.serviceHTML[svc.Slug]}
	}
	projects := make([]projectView, len(s.cat.Projects))
	for i, p := range s.cat.Projects {
		projects[i] = projectView{
			Project:      p,
			OverviewHTML: s.projectHTML[p.Slug],
			Carousel:     newCarouselView(p, v.carousel(p)),
		}
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Profile":   s.cat.Profile,
		"Nav":       s.cat.Nav,
		"Platforms": s.cat.Platforms,
		"HireOpen":  v.hire.IsOpen(),
		"About":     AboutMe,
		"Intro":     ContactIntro,
		"Services":  services,
		"Projects":  projects,
		"Modal":     s.modalView(v),
		"Toast":     v.toast.Snapshot(),
		"Email":     s.email(),
		"Contact":   contactView{},
	})
}

func (s *server) renderHire(c *gin.Context, v *visitor) {
	c.HTML(http.StatusOK, "nav-hire.html", gin.H{
		"HireOpen":  v.hire.IsOpen(),
		"Platforms": s.cat.Platforms,
	})
}

func (s *server) handleHireToggle(c *gin.Context) {
	s.withVisitor(c, func(v *visitor) {
		v.hire.Toggle()
		if v.hire.IsOpen() {
			s.trackInteraction(c, kindHireToggle, "open")
		}
		s.renderHire(c, v)
	})
}

// handleHireClose backs the "Direct Contact" link: following it closes
// the dropdown.
func (s *server) handleHireClose(c *gin.Context) {
	s.withVisitor(c, func(v *visitor) {
		v.hire.Close()
		s.renderHire(c, v)
	})
}

func (s *server) handleServiceOpen(c *gin.Context) {
	svc, err := s.cat.Service(c.Param("slug"))
	if err != nil {
		c.String(http.StatusNotFound, "Service not found")
		return
	}

	s.withVisitor(c, func(v *visitor) {
		v.modal.Open(svc)
		s.trackInteraction(c, kindServiceOpen, svc.Slug)
		c.HTML(http.StatusOK, "modal.html", gin.H{"Modal": s.modalView(v)})
	})
}

func (s *server) handleServiceClose(c *gin.Context) {
	s.withVisitor(c, func(v *visitor) {
		v.modal.Close()
		c.HTML(http.StatusOK, "modal.html", gin.H{"Modal": nil})
	})
}

// withCarousel resolves the project in the path and runs step against
// the visitor's carousel for it before rendering the fragment.
func (s *server) withCarousel(c *gin.Context, action string, step func(*widget.Carousel) error) {
	p, err := s.cat.Project(c.Param("slug"))
	if err != nil {
		c.String(http.StatusNotFound, "Project not found")
		return
	}

	s.withVisitor(c, func(v *visitor) {
		car := v.carousel(p)
		if err := step(car); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		s.trackInteraction(c, kindCarousel, p.Slug+":"+action)
		c.HTML(http.StatusOK, "carousel.html", newCarouselView(p, car))
	})
}

func (s *server) handleCarouselNext(c *gin.Context) {
	s.withCarousel(c, "next", func(car *widget.Carousel) error {
		car.Next()
		return nil
	})
}

func (s *server) handleCarouselPrev(c *gin.Context) {
	s.withCarousel(c, "prev", func(car *widget.Carousel) error {
		car.Prev()
		return nil
	})
}

func (s *server) handleCarouselGoTo(c *gin.Context) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid image index")
		return
	}
	s.withCarousel(c, "goto", func(car *widget.Carousel) error {
		return car.GoTo(i)
	})
}

func (s *server) renderToast(c *gin.Context, v *visitor) {
	c.HTML(http.StatusOK, "toast.html", gin.H{"Toast": v.toast.Snapshot()})
}

func (s *server) handleToast(c *gin.Context) {
	s.withVisitor(c, func(v *visitor) { s.renderToast(c, v) })
}

func (s *server) handleToastClose(c *gin.Context) {
	s.withVisitor(c, func(v *visitor) {
		v.toast.Close()
		s.renderToast(c, v)
	})
}

// reportedClipboard turns the outcome the browser posts after calling
// navigator.clipboard.writeText into a Clipboard.
func reportedClipboard(result string) widget.Clipboard {
	return widget.ClipboardFunc(func(context.Context, string) error {
		switch result {
		case "ok":
			return nil
		case "denied":
			return widget.ErrClipboardDenied
		default:
			return widget.ErrClipboardUnavailable
		}
	})
}

func (s *server) handleEmailCopy(c *gin.Context) {
	clip := reportedClipboard(c.PostForm("result"))

	s.withVisitor(c, func(v *visitor) {
		err := widget.CopyEmail(c.Request.Context(), clip, v.toast, s.email())
		switch {
		case err == nil:
			s.trackInteraction(c, kindEmailCopy, "")
		case errors.Is(err, widget.ErrClipboardDenied), errors.Is(err, widget.ErrClipboardUnavailable):
			s.trackInteraction(c, kindEmailCopyFailed, "")
		default:
			log.Printf("Email copy: %v", err)
		}
		s.renderToast(c, v)
	})
}
