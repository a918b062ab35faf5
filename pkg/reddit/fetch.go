package reddit

import (
	"context"
	"html"
	"strings"

	"RedditRandomBot/pkg/apperr"
	"RedditRandomBot/pkg/media"
	"RedditRandomBot/pkg/reddit/services"
	"RedditRandomBot/pkg/util"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("RedditRandomBot/pkg/reddit")

// GetPost downloads the listing of postUrl and builds a post from one of its
// children, picked randomly. postUrl can be a post or a listing like
// https://www.reddit.com/r/pics/random
//
// The returned error is always an *apperr.Error.
func (c *Client) GetPost(ctx context.Context, postUrl string) (post Post, err error) {
	ctx, span := tracer.Start(ctx, "reddit.GetPost", trace.WithAttributes(attribute.String("post_url", postUrl)))
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String("post_type", post.Type().String()))
		}
		span.End()
	}()
	children, err := c.getChildren(ctx, postUrl)
	if err != nil {
		return Post{}, err
	}
	return c.buildPost(ctx, postUrl, children)
}

// buildPost creates the post from a random child
func (c *Client) buildPost(ctx context.Context, postUrl string, children []interface{}) (post Post, err error) {
	// Reddit json is not always what we expect. Don't crash the whole application.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("recovering from panic in buildPost: %v", r)
		}
		if err != nil && !apperr.IsDomain(err) {
			post, err = Post{}, apperr.NewPostRetrievalError(postUrl, err)
		}
	}()
	data, ok := util.ChainedGetMap(children[c.random(len(children))], "data")
	if !ok {
		return Post{}, errors.New("cannot find node `data` in child")
	}
	fields := make(map[string]string, 5)
	for _, key := range []string{"subreddit_name_prefixed", "permalink", "title", "selftext", "url"} {
		value, ok := data[key].(string)
		if !ok {
			return Post{}, errors.Errorf("cannot find node `%s` in post", key)
		}
		fields[key] = value
	}
	post = Post{
		Subreddit: fields["subreddit_name_prefixed"],
		Permalink: util.PrefixRedditUrl(fields["permalink"]),
		Title:     html.UnescapeString(fields["title"]),
		Text:      util.TruncateText(html.UnescapeString(fields["selftext"]), c.maxTextLength),
	}
	// Links to other threads have nothing to download
	contentUrl := fields["url"]
	if strings.Contains(contentUrl, "/comments/") {
		return post, nil
	}
	medias, err := c.resolveMedia(ctx, contentUrl, data)
	if err != nil {
		return Post{}, err
	}
	post.Media = &medias[0]
	post.Album = medias
	if post.Media.Type == media.ContentTypeYoutube {
		post.Text += YoutubeLink(post.Media.URL)
	}
	return post, nil
}

// resolveMedia gets the media of the post. Galleries are detected here because
// their url is a reddit url which no service can route.
func (c *Client) resolveMedia(ctx context.Context, contentUrl string, data map[string]interface{}) ([]media.Media, error) {
	if gallery := galleryData(data); gallery != nil {
		return c.services.Resolve(ctx, services.KindRedditGallery, contentUrl, gallery)
	}
	return c.services.ResolveMedia(ctx, contentUrl, data)
}

// galleryData returns the post which contains the gallery; either data itself or its crosspost parent.
// nil is returned if the post is not a gallery.
func galleryData(data map[string]interface{}) map[string]interface{} {
	isGallery := func(post interface{}) bool {
		_, hasItems := util.ChainedGet(post, "gallery_data")
		_, hasMetadata := util.ChainedGet(post, "media_metadata")
		return hasItems && hasMetadata
	}
	if isGallery(data) {
		return data
	}
	if crossposts, _ := util.ChainedGetSlice(data, "crosspost_parent_list"); len(crossposts) > 0 && isGallery(crossposts[0]) {
		parent, _ := crossposts[0].(map[string]interface{})
		return parent
	}
	return nil
}
