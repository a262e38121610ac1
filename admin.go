// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/parth3300/portfolio/internal/config"
)

const (
	adminCookie          = "admin_token"
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

var errAdminDisabled = errors.New("admin password not configured")

type adminAuth struct {
	token        string
	hashingSalt  string
	username     string
	passwordHash []byte
}

// newAdminAuth prepares the admin login. Outside debug mode an unset
// password disables the admin area instead of falling back to a default.
func newAdminAuth(cfg config.Admin, debug bool) (*adminAuth, error) {
	token, err := generateAdminToken()
	if err != nil {
		return nil, err
	}
	salt, err := generateAdminToken()
	if err != nil {
		return nil, err
	}
	a := &adminAuth{token: token, hashingSalt: salt, username: cfg.Username}

	if a.username == "" {
		a.username = defaultAdminUsername
		if debug {
			log.Println("WARNING: Using default admin username. Set PORTFOLIO_ADMIN__USERNAME.")
		}
	}

	switch {
	case cfg.PasswordHash != "":
		a.passwordHash = []byte(cfg.PasswordHash)
	case cfg.Password != "":
		if a.passwordHash, err = bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost); err != nil {
			return nil, fmt.Errorf("hashing admin password: %w", err)
		}
	case debug:
		log.Println("WARNING: Using default admin password. Set PORTFOLIO_ADMIN__PASSWORD.")
		if a.passwordHash, err = bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost); err != nil {
			return nil, fmt.Errorf("hashing admin password: %w", err)
		}
	default:
		log.Println("Admin login disabled: no password configured")
	}

	log.Printf("Admin access available at: /admin/login")
	if debug {
		log.Printf("Admin token (dev only): %s", a.token)
	}
	return a, nil
}

func generateAdminToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating admin token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

func (a *adminAuth) check(username, password string) error {
	if a.passwordHash == nil {
		return errAdminDisabled
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return errors.New("invalid credentials")
	}
	return nil
}

// Hash IP address for privacy compliance (consistent per IP for the
// lifetime of the process).
func (a *adminAuth) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Privacy-conscious page view tracking. Only full page loads count;
// fragment requests are recorded as interactions by their handlers.
func (s *server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet ||
			strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") ||
			path == "/toast" || path == "/healthz" {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashedIP := s.admin.hashIP(c.ClientIP())
		userAgent := c.GetHeader("User-Agent")
		s.background(func() {
			if err := s.store.recordVisit(hashedIP, userAgent, path, s.clock.Now()); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		})
		c.Next()
	}
}

// trackInteraction records a UI interaction in the background.
func (s *server) trackInteraction(c *gin.Context, kind, target string) {
	if c.GetHeader("DNT") == "1" {
		return
	}
	hashedIP := s.admin.hashIP(c.ClientIP())
	s.background(func() {
		if err := s.store.recordInteraction(hashedIP, kind, target, s.clock.Now()); err != nil {
			log.Printf("Error recording interaction %s/%s: %v", kind, target, err)
		}
	})
}

func (s *server) cleanupOldVisitorData() {
	n, err := s.store.cleanup(s.cfg.RetentionDays, s.clock.Now())
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d records older than %d days", n, s.cfg.RetentionDays)
	}
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":         "Privacy Policy",
			"retentionDays": s.cfg.RetentionDays,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		if err := s.admin.check(username, password); err != nil {
			log.Printf("Failed admin login attempt from %s: %v", s.admin.hashIP(c.ClientIP()), err)
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
		log.Printf("Admin login successful from %s", s.admin.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", s.admin.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(s.admin.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.stats(s.clock.Now())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":          stats,
			"activeSessions": s.sessions.len(),
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.stats(s.clock.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.recentVisitors(200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		s.background(s.cleanupOldVisitorData)
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.stats(s.clock.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats-"+s.clock.Now().Format(time.DateOnly)+".json")
		log.Printf("Admin stats exported by %s", s.admin.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
