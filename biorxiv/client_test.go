package biorxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

const articlePage = `<!DOCTYPE html>
<html><head>
<meta name="DC.Date" content="2019-01-13">
<meta name="citation_author_email" content="raul.peralta@uaem.mx">
<meta name="citation_author_email" content="second{at}example.org">
<meta name="citation_author_email" content="raul.peralta@uaem.mx">
</head><body>
<span class="em-addr author-corresp-email-link"><a href="mailto:raul.peralta@uaem.mx">email</a></span>
</body></html>`

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/121814v1":
			w.Write([]byte(articlePage))
		case "/nodate":
			w.Write([]byte("<html><head></head><body></body></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Settings{BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestFindAuthors(t *testing.T) {
	c := newTestClient(t)
	got, err := c.FindAuthors(context.Background(), "121814v1")
	if err != nil {
		t.Fatal(err)
	}
	want := Authors{
		All:           []string{"raul.peralta@uaem.mx", "second@example.org"},
		Corresponding: []string{"raul.peralta@uaem.mx"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("authors (-want +got):\n%s", diff)
	}
}

func TestFindDate(t *testing.T) {
	c := newTestClient(t)
	got, err := c.FindDate(context.Background(), "121814v1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2019-01-13" {
		t.Errorf("date = %q", got)
	}

	if _, err := c.FindDate(context.Background(), "nodate"); !errors.Is(err, ErrNoDate) {
		t.Errorf("expected ErrNoDate, got %v", err)
	}
	if _, err := c.FindDate(context.Background(), "missing"); err == nil {
		t.Error("expected an error for a missing article")
	}
}
