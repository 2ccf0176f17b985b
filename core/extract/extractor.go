// Package extract implements the Extractor interface.
// It reads tables out of a full HTML page in two passes over the same
// document order:
//  1. Metadata: caption, source URL and classes of every <table>
//  2. Tables: the class-filtered tables as rectangular grids
//
// Both passes number tables by their position among all <table> elements,
// which is what keeps a table paired with its own metadata.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/wikitables/core"
	"github.com/gaurav-prasanna/wikitables/core/clean"
	"golang.org/x/net/html"
)

// noiseSelectors are elements whose text never belongs to a cell.
// Wikipedia uses hidden spans for sort keys.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"span.sortkey",
	"[style*='display:none']", "[style*='display: none']",
}

// HTMLExtractor reads tables and their metadata from HTML.
type HTMLExtractor struct {
	captions *clean.TableCleaner
}

// New creates an HTMLExtractor. A caption equal to one of emptyMarkers (or a
// default marker) is reported as absent.
func New(emptyMarkers ...string) *HTMLExtractor {
	return &HTMLExtractor{captions: clean.New(emptyMarkers...)}
}

// Metadata returns one record per <table> element in document order,
// regardless of its class.
func (e *HTMLExtractor) Metadata(markup string, sourceURL string) ([]core.TableMetadata, error) {
	doc, err := parseDocument(markup)
	if err != nil {
		return nil, &core.ParseError{Err: err}
	}

	var metas []core.TableMetadata
	doc.Find("table").Each(func(i int, s *goquery.Selection) {
		classAttr, _ := s.Attr("class")
		meta := core.TableMetadata{
			Index:      i,
			SourceURL:  sourceURL,
			CSSClasses: strings.Fields(classAttr),
		}

		caption := s.ChildrenFiltered("caption").First()
		if caption.Length() > 0 {
			if text, ok := e.captions.Text(cellText(caption)); ok {
				meta.Caption = &text
			}
		}
		metas = append(metas, meta)
	})
	return metas, nil
}

// parseDocument parses markup and strips noise elements.
func parseDocument(markup string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	// Line breaks separate words inside a cell.
	doc.Find("br").ReplaceWithHtml(" ")

	return doc, nil
}

// cellText returns the visible text of s with whitespace collapsed, keeping
// digit-grouping spaces. Text of nested tables is left out.
func cellText(s *goquery.Selection) string {
	if s.Find("table").Length() > 0 {
		s = s.Clone()
		s.Find("table").Remove()
	}
	return clean.CollapseSpace(s.Text())
}
