package mathtok

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// Input is a named document that can be converted on demand.
type Input interface {
	Name() string
	Convert(ctx context.Context, opts ...ConvertOption) (Result, error)
}

type fileInput struct {
	path string
}

// FileInput returns an Input reading the file at path.
func FileInput(path string) Input {
	return fileInput{path: path}
}

func (in fileInput) Name() string { return in.path }

func (in fileInput) Convert(ctx context.Context, opts ...ConvertOption) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return ConvertFile(in.path, opts...)
}

type urlInput struct {
	url    string
	client *http.Client
}

// URLInput returns an Input fetched over HTTP(S). A nil client uses
// http.DefaultClient.
func URLInput(url string, client *http.Client) Input {
	return urlInput{url: url, client: client}
}

func (in urlInput) Name() string { return in.url }

func (in urlInput) Convert(ctx context.Context, opts ...ConvertOption) (Result, error) {
	return HTTPConvert(ctx, HTTPConvertRequest{
		URL:     in.url,
		Client:  in.client,
		Options: opts,
	})
}

type readerInput struct {
	name   string
	r      io.Reader
	format Format
}

// ReaderInput returns an Input reading r once.
func ReaderInput(name string, r io.Reader, format Format) Input {
	return readerInput{name: name, r: r, format: format}
}

func (in readerInput) Name() string { return in.name }

func (in readerInput) Convert(ctx context.Context, opts ...ConvertOption) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Convert(ConvertRequest{Reader: in.r, Format: in.format, Options: opts})
}

// ConvertAll converts inputs with at most jobs conversions in flight (no
// limit when jobs <= 0). Results are in input order. The first error cancels
// the remaining conversions and is returned with the input name.
//
// A Sink passed through opts is shared by all conversions and must be safe
// for concurrent use.
func ConvertAll(ctx context.Context, inputs []Input, jobs int, opts ...ConvertOption) ([]Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	results := make([]Result, len(inputs))
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			res, err := in.Convert(ctx, opts...)
			if err != nil {
				return fmt.Errorf("convert %s: %w", in.Name(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
