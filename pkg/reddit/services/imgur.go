package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"path"
	"strings"

	"RedditRandomBot/pkg/media"
	"RedditRandomBot/pkg/util"

	"github.com/go-faster/errors"
)

// Imgur gets the images and videos of imgur through its API
type Imgur struct {
	base
	clientID    string
	apiEndpoint string
}

func NewImgur(client *http.Client, clientID, apiEndpoint string) *Imgur {
	return &Imgur{
		base:        base{client: client},
		clientID:    clientID,
		apiEndpoint: strings.TrimSuffix(apiEndpoint, "/"),
	}
}

func (*Imgur) Name() string {
	return "Imgur"
}

// Preprocess converts the imgur link to the API url of the image, gallery or album
func (i *Imgur) Preprocess(_ context.Context, link string, _ map[string]interface{}) (Target, error) {
	u, err := url.Parse(link)
	if err != nil {
		return Target{}, errors.Wrap(err, "cannot parse url")
	}
	hash := path.Base(strings.TrimSuffix(u.Path, "/"))
	if hash == "." || hash == "/" {
		return Target{}, errors.New("no imgur hash in url")
	}
	if ext := path.Ext(hash); ext != "" {
		hash = strings.TrimSuffix(hash, ext)
	}
	return Target{URL: i.apiEndpoint + "/" + imgurApi(u.Path) + "/" + hash}, nil
}

// imgurApi returns the API which the path belongs to
func imgurApi(urlPath string) string {
	switch {
	case strings.Contains(urlPath, "gallery"):
		return "gallery"
	case strings.HasPrefix(urlPath, "/a/"):
		return "album"
	default:
		return "image"
	}
}

func (i *Imgur) Fetch(ctx context.Context, target Target) (*Response, error) {
	return i.do(ctx, http.MethodGet, target, http.Header{"Authorization": {"Client-ID " + i.clientID}}, true)
}

// Postprocess creates a media for each of the images in the response.
// Gifs are sent as mp4 because imgur converts them anyway.
func (*Imgur) Postprocess(resp *Response) ([]media.Media, error) {
	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, errors.Wrap(err, "cannot parse response")
	}
	data, exists := util.Get(body, "data")
	if !exists {
		return nil, errors.New("no data in response")
	}
	items := []interface{}{data}
	if images, ok := util.ChainedGetSlice(data, "images"); ok {
		items = images
	}
	var result []media.Media
	for _, item := range items {
		var m media.Media
		mimeType := util.ChainedGetString(item, "", "type")
		switch {
		case util.AnyStr([]string{"image/jpeg", "image/png"}, mimeType):
			m = imgurMedia(item, "link", "size", media.ContentTypePhoto)
		case util.AnyStr([]string{"video", "image/gif"}, mimeType):
			m = imgurMedia(item, "mp4", "mp4_size", media.ContentTypeVideo)
		}
		if m.URL != "" {
			result = append(result, m)
		}
	}
	return result, nil
}

func imgurMedia(item interface{}, urlKey, sizeKey string, t media.ContentType) media.Media {
	var size *int64
	if s, ok := util.ChainedGetInt(item, sizeKey); ok {
		size = media.KnownSize(s)
	}
	return media.New(util.ChainedGetString(item, "", urlKey), t, size)
}
