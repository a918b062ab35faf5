package services

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"RedditRandomBot/pkg/apperr"
	"RedditRandomBot/pkg/media"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("RedditRandomBot/pkg/reddit/services")

// We never read more than this from the provider APIs
const maxResponseBodySize = 10 * 1000 * 1000

// Service is a media provider. Each provider converts the media url in reddit post
// to one or more media in four steps. See GetMedia.
type Service interface {
	// Name of the service, used in logs and errors
	Name() string
	// HasExternalRequest is true if the service needs to reach out to its provider.
	// If false, Fetch is never called and the preprocessed target is given to Postprocess.
	HasExternalRequest() bool
	// IsAuthenticated is true if the provider requests must be authenticated
	IsAuthenticated() bool
	// Preprocess converts the url in the reddit json to something which the provider understands.
	// data is the post data in reddit json.
	Preprocess(ctx context.Context, url string, data map[string]interface{}) (Target, error)
	// Fetch gets the media info from provider
	Fetch(ctx context.Context, target Target) (*Response, error)
	// Authenticate refreshes the access token of service
	Authenticate(ctx context.Context) error
	// Postprocess creates the media from the provider response
	Postprocess(resp *Response) ([]media.Media, error)
}

// GalleryItem describes one of the media in a gallery
type GalleryItem struct {
	URL  string
	Type media.ContentType
}

// Target is the result of Service.Preprocess
type Target struct {
	// URL which should be requested. For services without external requests
	// this is the final URL of the media.
	URL string
	// Gallery is only filled by gallery services
	Gallery []GalleryItem
}

// String returns a loggable representation of the target
func (t Target) String() string {
	if t.Gallery != nil {
		return "gallery of " + strconv.Itoa(len(t.Gallery)) + " items"
	}
	return t.URL
}

// Response is the provider response which is given to Service.Postprocess
type Response struct {
	StatusCode int
	// URL is the final URL of the request after redirects
	URL    string
	Header http.Header
	// ContentLength is -1 if unknown
	ContentLength int64
	// Body is only read if the service needs it
	Body []byte
	// The target which this response belongs to
	Target Target
}

// GetMedia runs the steps of the service to get the media of the url:
// preprocess, fetch, re-authenticate and re-fetch on 401, and postprocess.
// Services must not implement this logic themselves.
func GetMedia(ctx context.Context, s Service, url string, data map[string]interface{}) ([]media.Media, error) {
	ctx, span := tracer.Start(ctx, "services.GetMedia", trace.WithAttributes(
		attribute.String("service", s.Name()),
		attribute.String("url", url),
	))
	defer span.End()
	target, err := s.Preprocess(ctx, url, data)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot preprocess %s in %s", url, s.Name())
	}
	var resp *Response
	if s.HasExternalRequest() {
		resp, err = s.Fetch(ctx, target)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot fetch %s in %s", target, s.Name())
		}
		if s.IsAuthenticated() && resp.StatusCode == http.StatusUnauthorized {
			log.Info().Str("service", s.Name()).Msg("access token rejected, authenticating again")
			if err = s.Authenticate(ctx); err != nil {
				return nil, err
			}
			resp, err = s.Fetch(ctx, target)
			if err != nil {
				return nil, errors.Wrapf(err, "cannot fetch %s in %s", target, s.Name())
			}
		}
		if resp.StatusCode >= http.StatusMultipleChoices {
			return nil, apperr.NewMediaRetrievalError(s.Name(), url, target.String())
		}
	} else {
		resp = &Response{
			StatusCode:    http.StatusOK,
			URL:           target.URL,
			ContentLength: -1,
			Target:        target,
		}
	}
	medias, err := s.Postprocess(resp)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot postprocess %s in %s", target, s.Name())
	}
	if len(medias) == 0 {
		return nil, apperr.NewMediaRetrievalError(s.Name(), url, target.String())
	}
	span.SetAttributes(attribute.Int("medias", len(medias)))
	return medias, nil
}

// base has the default behaviour of services
type base struct {
	client *http.Client
}

func (base) HasExternalRequest() bool {
	return true
}

func (base) IsAuthenticated() bool {
	return false
}

// Preprocess passes the url as is
func (base) Preprocess(_ context.Context, url string, _ map[string]interface{}) (Target, error) {
	return Target{URL: url}, nil
}

// Fetch does a simple GET request without reading the body
func (b base) Fetch(ctx context.Context, target Target) (*Response, error) {
	return b.do(ctx, http.MethodGet, target, nil, false)
}

func (base) Authenticate(context.Context) error {
	return nil
}

// do sends a request to target.URL. The body is only read if readBody is true.
func (b base) do(ctx context.Context, method string, target Target, header http.Header, readBody bool) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create request")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "cannot do the request")
	}
	defer resp.Body.Close()
	result := &Response{
		StatusCode:    resp.StatusCode,
		URL:           resp.Request.URL.String(),
		Header:        resp.Header,
		ContentLength: resp.ContentLength,
		Target:        target,
	}
	if readBody {
		result.Body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
		if err != nil {
			return nil, errors.Wrap(err, "cannot read body")
		}
	}
	return result, nil
}

// mediaSize returns the length of the response body as a media size
func (r *Response) mediaSize() *int64 {
	if r.ContentLength >= 0 {
		return media.KnownSize(r.ContentLength)
	}
	size, err := strconv.ParseInt(r.Header.Get("Content-Length"), 10, 64)
	if err != nil || size < 0 {
		return nil
	}
	return media.KnownSize(size)
}
