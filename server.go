package main

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parth3300/portfolio/internal/catalog"
	"github.com/parth3300/portfolio/internal/config"
	"github.com/parth3300/portfolio/internal/widget"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type server struct {
	cfg      *config.Config
	cat      *catalog.Catalog
	store    *store
	admin    *adminAuth
	sessions *sessions
	clock    widget.Clock
	engine   *gin.Engine

	// Markdown copy rendered once at startup, keyed by slug.
	serviceHTML map[string]template.HTML
	projectHTML map[string]template.HTML

	bg sync.WaitGroup
}

func newServer(cfg *config.Config, cat *catalog.Catalog, st *store, clock widget.Clock) (*server, error) {
	if clock == nil {
		clock = widget.SystemClock
	}

	admin, err := newAdminAuth(cfg.Admin, cfg.GinMode == gin.DebugMode)
	if err != nil {
		return nil, err
	}

	s := &server{
		cfg:         cfg,
		cat:         cat,
		store:       st,
		admin:       admin,
		sessions:    newSessions(clock, cfg.SessionTTL, cfg.ToastDuration, cfg.MaxSessions),
		clock:       clock,
		serviceHTML: make(map[string]template.HTML, len(cat.Services)),
		projectHTML: make(map[string]template.HTML, len(cat.Projects)),
	}

	md := catalog.NewMarkdown()
	for _, svc := range cat.Services {
		if s.serviceHTML[svc.Slug], err = md.Render(svc.Description); err != nil {
			return nil, fmt.Errorf("service %s: %w", svc.Slug, err)
		}
	}
	for _, p := range cat.Projects {
		if s.projectHTML[p.Slug], err = md.Render(p.Overview); err != nil {
			return nil, fmt.Errorf("project %s: %w", p.Slug, err)
		}
	}

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))
	r.Static("/images", "./images")
	r.Use(s.visitorTrackingMiddleware())

	s.setupRoutes(r)
	s.setupAdminRoutes(r)
	s.engine = r
	return s, nil
}

func (s *server) setupRoutes(r *gin.Engine) {
	r.GET("/", s.handleIndex)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/nav/hire", s.handleHireToggle)
	r.POST("/nav/close", s.handleHireClose)

	r.POST("/services/:slug/open", s.handleServiceOpen)
	r.POST("/services/close", s.handleServiceClose)

	r.POST("/projects/:slug/carousel/next", s.handleCarouselNext)
	r.POST("/projects/:slug/carousel/prev", s.handleCarouselPrev)
	r.POST("/projects/:slug/carousel/goto/:index", s.handleCarouselGoTo)

	r.GET("/toast", s.handleToast)
	r.POST("/toast/close", s.handleToastClose)
	r.POST("/email/copy", s.handleEmailCopy)

	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContact)
}

// background runs f on its own goroutine and lets shutdown wait for it.
func (s *server) background(f func()) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		f()
	}()
}

// run serves until ctx is cancelled, then drains in-flight requests.
func (s *server) run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sessions.run(ctx, time.Minute)
	s.background(s.cleanupOldVisitorData)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.bg.Wait()
	return err
}
