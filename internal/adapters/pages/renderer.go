// Package pages renders the HTML pages of the data section from embedded templates.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"confdata/internal/adapters/textutil"
	"confdata/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))

type renderer struct {
	mediaURL string
}

// NewRenderer returns a PageRenderer. mediaURL prefixes stored logo paths.
func NewRenderer(mediaURL string) domain.PageRenderer {
	return &renderer{mediaURL: mediaURL}
}

type sponsorView struct {
	Name    string
	Logo    string
	Listing template.HTML
}

type groupView struct {
	Level    domain.SponsorLevel
	Sponsors []sponsorView
}

func (r *renderer) RenderDataIndex(w io.Writer, reports []domain.Report) error {
	if err := templates.ExecuteTemplate(w, "data.html", map[string]any{"Reports": reports}); err != nil {
		return fmt.Errorf("render data index: %w", err)
	}
	return nil
}

func (r *renderer) RenderSponsorListing(w io.Writer, groups []*domain.SponsorLevelGroup) error {
	views := make([]groupView, 0, len(groups))
	for _, g := range groups {
		gv := groupView{Level: g.Level}
		for _, s := range g.Sponsors {
			listing, err := markdownToHTML(s.ListingText)
			if err != nil {
				return fmt.Errorf("render listing for sponsor %d: %w", s.ID, err)
			}
			gv.Sponsors = append(gv.Sponsors, sponsorView{
				Name:    s.Name,
				Logo:    textutil.MediaURL(r.mediaURL, s.WebLogo),
				Listing: listing,
			})
		}
		views = append(views, gv)
	}
	if err := templates.ExecuteTemplate(w, "sponsors.html", map[string]any{"Groups": views}); err != nil {
		return fmt.Errorf("render sponsor listing: %w", err)
	}
	return nil
}

// markdownToHTML converts listing text; raw HTML in the source is not passed through.
func markdownToHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
