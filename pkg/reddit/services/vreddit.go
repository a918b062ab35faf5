package services

import (
	"context"
	"io"
	"net/http"
	"strings"

	"RedditRandomBot/pkg/media"
	"RedditRandomBot/pkg/reddit/helpers"
	"RedditRandomBot/pkg/util"

	"github.com/rs/zerolog/log"
)

// Vreddit serves the videos hosted on v.redd.it. Reddit sends them as gifs.
type Vreddit struct {
	base
}

func NewVreddit(client *http.Client) *Vreddit {
	return &Vreddit{base{client: client}}
}

func (*Vreddit) Name() string {
	return "Vreddit"
}

// Preprocess finds the video file of the post. Reddit is not consistent about where
// the fallback url is, so we look in the crosspost parent or the post media and
// guess the url from the playlist if none of them work.
func (v *Vreddit) Preprocess(ctx context.Context, link string, data map[string]interface{}) (Target, error) {
	link = strings.TrimSuffix(link, "/")
	var fallbackUrl string
	if crossposts, _ := util.ChainedGetSlice(data, "crosspost_parent_list"); len(crossposts) > 0 {
		// crossposts have null media and the video is in the parent
		fallbackUrl = util.ChainedGetString(crossposts[0], "", "secure_media", "reddit_video", "fallback_url")
	} else {
		fallbackUrl = util.ChainedGetString(data, "", "media", "reddit_video", "fallback_url")
	}
	if fallbackUrl == "" {
		fallbackUrl = link + "/DASH_1_2_M"
	}
	if v.exists(ctx, fallbackUrl) {
		return Target{URL: fallbackUrl}, nil
	}
	if best, ok := v.bestPlaylistVideo(ctx, link); ok {
		return Target{URL: best}, nil
	}
	return Target{URL: link + "/DASH_1080"}, nil
}

// exists sends a HEAD request to link and reports if it was successful
func (v *Vreddit) exists(ctx context.Context, link string) bool {
	resp, err := v.do(ctx, http.MethodHead, Target{URL: link}, nil, false)
	if err != nil {
		log.Debug().Err(err).Str("url", link).Msg("cannot check v.redd.it url")
		return false
	}
	return resp.StatusCode < http.StatusMultipleChoices
}

// bestPlaylistVideo reads the DASH playlist of the video and returns the url of best quality
func (v *Vreddit) bestPlaylistVideo(ctx context.Context, link string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link+"/DASHPlaylist.mpd", nil)
	if err != nil {
		return "", false
	}
	resp, err := v.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("url", link).Msg("cannot get the playlist")
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", false
	}
	best, err := helpers.BestDashVideo(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		log.Debug().Err(err).Str("url", link).Msg("cannot parse the playlist")
		return "", false
	}
	name := string(best)
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name, true
	}
	return link + "/" + strings.TrimPrefix(name, "/"), true
}

func (*Vreddit) Postprocess(resp *Response) ([]media.Media, error) {
	return []media.Media{media.New(resp.URL, media.ContentTypeGif, resp.mediaSize())}, nil
}
