// Package catalog holds the static site content: profile, navigation,
// hiring platforms, services and project case studies. The content is
// decoded once from YAML and never mutated afterwards.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrProjectNotFound = errors.New("project not found")
)

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type Profile struct {
	Name     string `yaml:"name"`
	Headline string `yaml:"headline"`
	Tagline  string `yaml:"tagline"`
	Photo    string `yaml:"photo"`
	Role     string `yaml:"role"`
	Stack    string `yaml:"stack"`
	Email    string `yaml:"email"`
	Socials  []Link `yaml:"socials"`
}

// NavLink points at an in-page anchor.
type NavLink struct {
	Label  string `yaml:"label"`
	Anchor string `yaml:"anchor"`
}

// Platform is a freelancing profile listed under "Hire me".
type Platform struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Logo string `yaml:"logo"`
}

// Service is one offered service. Description is markdown.
type Service struct {
	Slug         string   `yaml:"slug"`
	Title        string   `yaml:"title"`
	Icon         string   `yaml:"icon"`
	Description  string   `yaml:"description"`
	Features     []string `yaml:"features"`
	Technologies []string `yaml:"technologies"`
}

type Image struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

type Challenge struct {
	Challenge string `yaml:"challenge"`
	Solution  string `yaml:"solution"`
}

// Project is a case study shown with an image carousel. Overview is markdown.
type Project struct {
	Slug         string      `yaml:"slug"`
	Title        string      `yaml:"title"`
	Subtitle     string      `yaml:"subtitle"`
	Overview     string      `yaml:"overview"`
	Images       []Image     `yaml:"images"`
	Technologies []string    `yaml:"technologies"`
	Features     []string    `yaml:"features"`
	Highlights   []string    `yaml:"highlights"`
	Challenges   []Challenge `yaml:"challenges"`
	Links        []Link      `yaml:"links"`
}

type Catalog struct {
	Profile   Profile    `yaml:"profile"`
	Nav       []NavLink  `yaml:"nav"`
	Platforms []Platform `yaml:"platforms"`
	Services  []Service  `yaml:"services"`
	Projects  []Project  `yaml:"projects"`

	services map[string]int
	projects map[string]int
}

// Load decodes and validates a catalog. Unknown keys are errors.
func Load(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(defaultCatalog)
})

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return loadDefault()
}

func (c *Catalog) index() error {
	c.services = make(map[string]int, len(c.Services))
	for i, s := range c.Services {
		if s.Slug == "" || s.Title == "" {
			return fmt.Errorf("service %d: slug and title are required", i)
		}
		if _, dup := c.services[s.Slug]; dup {
			return fmt.Errorf("service %q: duplicate slug", s.Slug)
		}
		c.services[s.Slug] = i
	}

	c.projects = make(map[string]int, len(c.Projects))
	for i, p := range c.Projects {
		if p.Slug == "" || p.Title == "" {
			return fmt.Errorf("project %d: slug and title are required", i)
		}
		if len(p.Images) == 0 {
			return fmt.Errorf("project %q: at least one image is required", p.Slug)
		}
		if _, dup := c.projects[p.Slug]; dup {
			return fmt.Errorf("project %q: duplicate slug", p.Slug)
		}
		c.projects[p.Slug] = i
	}
	return nil
}

func (c *Catalog) Service(slug string) (Service, error) {
	i, ok := c.services[slug]
	if !ok {
		return Service{}, fmt.Errorf("%w: %s", ErrServiceNotFound, slug)
	}
	return c.Services[i], nil
}

func (c *Catalog) Project(slug string) (Project, error) {
	i, ok := c.projects[slug]
	if !ok {
		return Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, slug)
	}
	return c.Projects[i], nil
}
