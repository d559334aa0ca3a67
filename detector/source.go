package detector

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"DistributedRainbow/iiif"
	"DistributedRainbow/page"
	"DistributedRainbow/raster"

	"github.com/pkg/errors"
)

// Source produces the image of one page. Open is called once, from any
// goroutine.
type Source interface {
	Page() page.ID
	Open(ctx context.Context) (image.Image, error)
}

// ImageSource is an already decoded page.
type ImageSource struct {
	ID    page.ID
	Image image.Image
}

func (s ImageSource) Page() page.ID { return s.ID }

func (s ImageSource) Open(context.Context) (image.Image, error) {
	if s.Image == nil {
		return nil, errors.Errorf("page %s has no image", s.ID)
	}
	return s.Image, nil
}

// EncodedSource holds the encoded bytes of a page, as carried by tasks.
type EncodedSource struct {
	ID   page.ID
	Data []byte
}

func (s EncodedSource) Page() page.ID { return s.ID }

func (s EncodedSource) Open(context.Context) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(s.Data))
	if err != nil {
		return nil, &page.DecodeError{Page: s.ID, Err: err}
	}
	return img, nil
}

// FileSource is a page rendered to disk.
type FileSource struct {
	File raster.Page
}

func (s FileSource) Page() page.ID { return s.File.ID }

func (s FileSource) Open(context.Context) (image.Image, error) {
	return s.File.Open(0)
}

// RemoteSource fetches a page from a IIIF server.
type RemoteSource struct {
	Client *iiif.Client
	ID     page.ID
}

func (s RemoteSource) Page() page.ID { return s.ID }

func (s RemoteSource) Open(ctx context.Context) (image.Image, error) {
	return s.Client.FetchPage(ctx, s.ID.PaperID, s.ID.Number)
}

// FileSources wraps rasterized pages.
func FileSources(pages []raster.Page) []Source {
	sources := make([]Source, len(pages))
	for i, p := range pages {
		sources[i] = FileSource{File: p}
	}
	return sources
}

// RemoteSources lists pages 1 to n of a paper on a IIIF server.
func RemoteSources(client *iiif.Client, paperID string, n int) []Source {
	sources := make([]Source, n)
	for i := range sources {
		sources[i] = RemoteSource{Client: client, ID: page.New(paperID, i+1)}
	}
	return sources
}
