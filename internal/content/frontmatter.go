package content

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// Envelope types mirror the recognized front matter keys per kind. Unknown
// keys are collected inline so authors can carry extra metadata without
// breaking the parse.

type postEnvelope struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Date        string         `yaml:"date"`
	Author      string         `yaml:"author"`
	Tags        []string       `yaml:"tags"`
	Category    string         `yaml:"category"`
	Image       string         `yaml:"image"`
	Slug        string         `yaml:"slug"`
	Custom      map[string]any `yaml:",inline"`
}

type productEnvelope struct {
	Title         string         `yaml:"title"`
	Description   string         `yaml:"description"`
	Category      string         `yaml:"category"`
	Price         string         `yaml:"price"`
	OriginalPrice string         `yaml:"originalPrice"`
	Currency      string         `yaml:"currency"`
	Image         string         `yaml:"image"`
	URL           string         `yaml:"url"`
	CTA           string         `yaml:"cta"`
	Tags          []string       `yaml:"tags"`
	Featured      bool           `yaml:"featured"`
	Badge         string         `yaml:"badge"`
	Highlights    []string       `yaml:"highlights"`
	Custom        map[string]any `yaml:",inline"`
}

type videoEnvelope struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Date        string         `yaml:"date"`
	Platform    string         `yaml:"platform"`
	VideoID     string         `yaml:"videoId"`
	URL         string         `yaml:"url"`
	Thumbnail   string         `yaml:"thumbnail"`
	Duration    string         `yaml:"duration"`
	Views       string         `yaml:"views"`
	Tags        []string       `yaml:"tags"`
	Featured    bool           `yaml:"featured"`
	Custom      map[string]any `yaml:",inline"`
}

type brandEnvelope struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Logo        string         `yaml:"logo"`
	URL         string         `yaml:"url"`
	Category    string         `yaml:"category"`
	Featured    bool           `yaml:"featured"`
	Order       int            `yaml:"order"`
	Custom      map[string]any `yaml:",inline"`
}

func parseFrontMatter(source []byte, target any) ([]byte, error) {
	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, target)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return body, nil
}
