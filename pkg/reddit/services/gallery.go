package services

import (
	"context"
	"html"

	"RedditRandomBot/pkg/media"
	"RedditRandomBot/pkg/util"

	"github.com/go-faster/errors"
)

// RedditGallery reads the media of the galleries hosted on reddit from the post itself
type RedditGallery struct {
	base
}

func NewRedditGallery() *RedditGallery {
	return &RedditGallery{}
}

func (*RedditGallery) Name() string {
	return "RedditGallery"
}

func (*RedditGallery) HasExternalRequest() bool {
	return false
}

// Preprocess lists the items of gallery_data with their source in media_metadata.
// data must be the post which owns the gallery; for crossposts this is the parent.
func (*RedditGallery) Preprocess(_ context.Context, link string, data map[string]interface{}) (Target, error) {
	items, ok := util.ChainedGetSlice(data, "gallery_data", "items")
	if !ok {
		return Target{}, errors.New("no gallery_data in post")
	}
	metadata, ok := util.ChainedGetMap(data, "media_metadata")
	if !ok {
		return Target{}, errors.New("no media_metadata in post")
	}
	gallery := make([]GalleryItem, 0, len(items))
	for _, item := range items {
		id := util.ChainedGetString(item, "", "media_id")
		meta, exists := util.Get(metadata, id)
		if id == "" || !exists {
			continue
		}
		if status := util.ChainedGetString(meta, "valid", "status"); status != "valid" {
			continue
		}
		if mp4 := util.ChainedGetString(meta, "", "s", "mp4"); mp4 != "" {
			gallery = append(gallery, GalleryItem{URL: html.UnescapeString(mp4), Type: media.ContentTypeVideo})
		} else if u := util.ChainedGetString(meta, "", "s", "u"); u != "" {
			gallery = append(gallery, GalleryItem{URL: html.UnescapeString(u), Type: media.ContentTypePhoto})
		}
	}
	return Target{URL: link, Gallery: gallery}, nil
}

func (*RedditGallery) Postprocess(resp *Response) ([]media.Media, error) {
	result := make([]media.Media, 0, len(resp.Target.Gallery))
	for _, item := range resp.Target.Gallery {
		result = append(result, media.New(item.URL, item.Type, nil))
	}
	return result, nil
}
