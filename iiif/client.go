/*
Package iiif fetches rendered pages of bioRxiv papers from a IIIF image
server. Pages are addressed as

	https://<host>/iiif/2/biorxiv:<paper>.pdf/full/<width>,/0/default.jpg?page=<n>

A request past the last page fails with a body containing "Index N out of
bounds for length M"; that failure is reported as an *OutOfRangeError and
used to discover the page count.
*/
package iiif

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"DistributedRainbow/page"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/pkg/errors"
)

const farPage = 1000

var outOfRange = regexp.MustCompile(`Index (\d+) out of bounds for length (\d+)`)

// OutOfRangeError reports a page past the end of the paper.
type OutOfRangeError struct {
	Requested int
	Length    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("page index %d out of range, paper has %d pages", e.Requested, e.Length)
}

type Settings struct {
	BaseURL string
	Width   int
	Timeout time.Duration
}

func (s *Settings) String() string {
	return fmt.Sprintf("{IIIF BaseURL: %s Width: %d Timeout: %s}", s.BaseURL, s.Width, s.Timeout)
}

func (s *Settings) Verify() error {
	if s.BaseURL == "" {
		s.BaseURL = "https://iiif-biorxiv.saladi.org"
	}
	if _, err := url.Parse(s.BaseURL); err != nil {
		return errors.Wrap(err, "IIIF base URL")
	}
	if s.Width <= 0 {
		s.Width = 500
	}
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
		logger:   bslogger.NewLogger("IIIFClient", bslogger.Normal, nil),
		settings: settings,
	}, nil
}

func (c *Client) pageURL(paperID string, n int) string {
	return fmt.Sprintf("%s/iiif/2/biorxiv:%s.pdf/full/%d,/0/default.jpg?page=%d",
		c.settings.BaseURL, url.PathEscape(paperID), c.settings.Width, n)
}

// FetchPage downloads and decodes page n of a paper.
func (c *Client) FetchPage(ctx context.Context, paperID string, n int) (image.Image, error) {
	body, err := c.get(ctx, paperID, n)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	img, _, err := image.Decode(body)
	if err != nil {
		return nil, &page.DecodeError{Page: page.New(paperID, n), Err: err}
	}
	return img, nil
}

// CountPages asks for a page far past the end and reads the length from the
// server's complaint.
func (c *Client) CountPages(ctx context.Context, paperID string) (int, error) {
	body, err := c.get(ctx, paperID, farPage)
	var oor *OutOfRangeError
	if errors.As(err, &oor) {
		c.logger.Debugf("Paper %s has %d pages", paperID, oor.Length)
		return oor.Length, nil
	}
	if err != nil {
		return 0, err
	}
	body.Close()
	return 0, errors.Errorf("paper %s has at least %d pages", paperID, farPage)
}

func (c *Client) get(ctx context.Context, paperID string, n int) (io.ReadCloser, error) {
	target := c.pageURL(paperID, n)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	c.logger.Debugf("GET %s", target)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching page %d of %s", n, paperID)
	}
	if resp.StatusCode == http.StatusOK {
		return resp.Body, nil
	}
	defer resp.Body.Close()

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if m := outOfRange.FindSubmatch(msg); m != nil {
		requested, _ := strconv.Atoi(string(m[1]))
		length, _ := strconv.Atoi(string(m[2]))
		return nil, &OutOfRangeError{Requested: requested, Length: length}
	}
	return nil, errors.Errorf("fetching page %d of %s: %s", n, paperID, resp.Status)
}
