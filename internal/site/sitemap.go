package site

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Bitlatte/resonant/internal/model"
)

// StaticRoutes are the fixed pages of the marketing site.
var StaticRoutes = []string{
	"",
	"/our-work",
	"/services",
	"/about",
	"/backstage",
	"/contact",
	"/start-a-project",
	"/search",
}

// SitemapURL is one <url> element.
type SitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// Sitemap lists the static routes, then every case study and backstage post.
func (s *Site) Sitemap(baseURL string, now time.Time) []SitemapURL {
	base := strings.TrimRight(baseURL, "/")
	generated := now.UTC().Format(time.RFC3339)

	urls := make([]SitemapURL, 0, len(StaticRoutes)+s.Projects.Len()+s.Posts.Len())
	for _, path := range StaticRoutes {
		if path == "" {
			path = "/"
		}
		urls = append(urls, SitemapURL{Loc: base + path, LastMod: generated})
	}
	for _, p := range s.Projects.Summaries() {
		urls = append(urls, entryURL(base, "/work/", p.Common))
	}
	for _, p := range s.Posts.Summaries() {
		urls = append(urls, entryURL(base, "/backstage/", p.Common))
	}
	return urls
}

func entryURL(base, prefix string, c model.Common) SitemapURL {
	return SitemapURL{Loc: base + prefix + c.Slug, LastMod: c.PublishedAt.String()}
}

// WriteSitemap encodes urls as a sitemaps.org document.
func WriteSitemap(w io.Writer, urls []SitemapURL) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write sitemap header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	doc := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9", URLs: urls}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	return nil
}
