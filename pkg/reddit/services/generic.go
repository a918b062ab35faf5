package services

import (
	"net/http"

	"RedditRandomBot/pkg/media"
)

// Generic is used when no other service matches the url.
// It guesses the media type from the url and gets the size from the headers.
type Generic struct {
	base
}

func NewGeneric(client *http.Client) *Generic {
	return &Generic{base{client: client}}
}

func (*Generic) Name() string {
	return "Generic"
}

func (*Generic) Postprocess(resp *Response) ([]media.Media, error) {
	return []media.Media{
		media.New(resp.URL, media.ContentTypeFromString(resp.URL, media.ContentTypePhoto), resp.mediaSize()),
	}, nil
}
