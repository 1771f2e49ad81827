package providers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// sectionHeading is the exact text of the h5 that opens the training
// vacancies block on the OLG Hamm page.
const sectionHeading = "Kurzfristig zu besetzende Ausbildungsplätze:"

const (
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	pageTimeout = 15 * time.Second
)

var pageClient = &http.Client{Timeout: pageTimeout}

// Snapshot is a single observation of the monitored page. Section holds the
// serialized markup of the training vacancies block; SectionFound is false
// when the heading is missing or the block is empty, which downstream treats
// as the same state.
type Snapshot struct {
	HTML         string
	Section      string
	SectionFound bool
}

type OLGHammProvider struct {
	pageURL  string
	loadPage func(context.Context, string) ([]byte, error)
}

func NewOLGHammProvider(pageURL string) *OLGHammProvider {
	return &OLGHammProvider{
		pageURL:  pageURL,
		loadPage: loadPage,
	}
}

// Snapshot fetches the page and extracts the training vacancies section.
// A missing section is not an error; the page reorganizing is a legitimate
// steady state.
func (p *OLGHammProvider) Snapshot(ctx context.Context) (Snapshot, error) {
	html, err := p.loadPage(ctx, p.pageURL)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load page: %w", err)
	}

	section, found, err := extractSection(html)
	if err != nil {
		return Snapshot{}, fmt.Errorf("extract section: %w", err)
	}

	return Snapshot{
		HTML:         string(html),
		Section:      section,
		SectionFound: found,
	}, nil
}

func loadPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get page=%s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := pageClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get page=%s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("get page=%s: status=%s", url, resp.Status)
	}

	var res bytes.Buffer
	_, err = res.ReadFrom(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read page=%s: %w", url, err)
	}

	return res.Bytes(), nil
}

// extractSection collects every element sibling after the section heading up
// to (but not including) the next heading of any level, and serializes them
// back to markup. Bounding by the next heading keeps the extraction stable
// when the page inserts or removes unrelated siblings elsewhere.
func extractSection(html []byte) (string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", false, fmt.Errorf("parse HTML: %w", err)
	}

	var heading *goquery.Selection
	doc.Find("h5").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Text() == sectionHeading {
			heading = s
			return false
		}
		return true
	})
	if heading == nil {
		return "", false, nil
	}

	var parts []string
	var renderErr error
	heading.NextAll().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if isHeading(s) {
			return false
		}
		markup, oErr := goquery.OuterHtml(s)
		if oErr != nil {
			renderErr = fmt.Errorf("render section sibling: %w", oErr)
			return false
		}
		parts = append(parts, markup)
		return true
	})
	if renderErr != nil {
		return "", false, renderErr
	}

	combined := strings.TrimSpace(strings.Join(parts, "\n"))
	if combined == "" {
		return "", false, nil
	}

	return combined, true, nil
}

func isHeading(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}
