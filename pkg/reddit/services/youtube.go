package services

import (
	"context"

	"RedditRandomBot/pkg/media"
	"RedditRandomBot/pkg/util"
)

// Youtube does not download anything. The video is shown as a link in the text.
type Youtube struct {
	base
}

func NewYoutube() *Youtube {
	return &Youtube{}
}

func (*Youtube) Name() string {
	return "Youtube"
}

func (*Youtube) HasExternalRequest() bool {
	return false
}

// Preprocess prefers the url of the oembed of the post
func (*Youtube) Preprocess(_ context.Context, link string, data map[string]interface{}) (Target, error) {
	return Target{URL: util.ChainedGetString(data, link, "media", "oembed", "url")}, nil
}

func (*Youtube) Postprocess(resp *Response) ([]media.Media, error) {
	return []media.Media{media.New(resp.URL, media.ContentTypeYoutube, nil)}, nil
}
