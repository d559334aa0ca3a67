// Package biorxiv reads author contacts and posting dates from bioRxiv
// article pages.
package biorxiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoDate is returned when an article page carries no DC.Date tag.
var ErrNoDate = errors.New("article page has no date")

// Authors holds distinct e-mail addresses, sorted.
type Authors struct {
	All           []string
	Corresponding []string
}

type Settings struct {
	BaseURL string
	Timeout time.Duration
}

func (s *Settings) Verify() error {
	if s.BaseURL == "" {
		s.BaseURL = "https://www.biorxiv.org/content/10.1101"
	}
	s.BaseURL = strings.TrimSuffix(s.BaseURL, "/")
	if s.Timeout <= 0 {
		s.Timeout = 2 * time.Minute
	}
	return nil
}

type Client struct {
	http     *http.Client
	logger   bslogger.Logger
	settings Settings
}

func NewClient(settings Settings) (*Client, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	return &Client{
		http:     &http.Client{Timeout: settings.Timeout},
		logger:   bslogger.NewLogger("BiorxivClient", bslogger.Normal, nil),
		settings: settings,
	}, nil
}

// FindAuthors lists the citation e-mail addresses of an article and those of
// its corresponding authors.
func (c *Client) FindAuthors(ctx context.Context, code string) (Authors, error) {
	doc, err := c.article(ctx, code)
	if err != nil {
		return Authors{}, err
	}

	all := make(map[string]bool)
	corresponding := make(map[string]bool)
	walk(doc, func(n *html.Node) {
		switch {
		case n.DataAtom == atom.Meta && attr(n, "name") == "citation_author_email":
			if addr := cleanAddress(attr(n, "content")); addr != "" {
				all[addr] = true
			}
		case hasClass(n, "author-corresp-email-link"):
			if a := find(n, atom.A); a != nil {
				if addr := cleanAddress(attr(a, "href")); addr != "" {
					corresponding[addr] = true
				}
			}
		}
	})

	return Authors{All: keys(all), Corresponding: keys(corresponding)}, nil
}

// FindDate returns the posting date of an article, as printed in its
// DC.Date meta tag.
func (c *Client) FindDate(ctx context.Context, code string) (string, error) {
	doc, err := c.article(ctx, code)
	if err != nil {
		return "", err
	}
	var date string
	walk(doc, func(n *html.Node) {
		if date == "" && n.DataAtom == atom.Meta && attr(n, "name") == "DC.Date" {
			date = attr(n, "content")
		}
	})
	if date == "" {
		return "", errors.Wrapf(ErrNoDate, "article %s", code)
	}
	return date, nil
}

func (c *Client) article(ctx context.Context, code string) (*html.Node, error) {
	target := fmt.Sprintf("%s/%s", c.settings.BaseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	c.logger.Debugf("GET %s", target)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching article %s", code)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, errors.Errorf("fetching article %s: %s", code, resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing article %s", code)
	}
	return doc, nil
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

func find(n *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(n, func(m *html.Node) {
		if found == nil && m.DataAtom == a {
			found = m
		}
	})
	return found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// cleanAddress strips mailto: and restores obfuscated {at} signs.
func cleanAddress(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "mailto:"))
	return strings.ReplaceAll(s, "{at}", "@")
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
