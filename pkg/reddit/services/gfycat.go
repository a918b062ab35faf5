package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"RedditRandomBot/pkg/apperr"
	"RedditRandomBot/pkg/media"

	"github.com/go-faster/errors"
)

const (
	// Videos bigger than this are replaced with their small gif
	// See https://developers.gfycat.com/api/#getting-gfycats
	gfycatMaxVideoSize int64 = 20000000
	// The size of the max5mbGif variant. The real size is not reported.
	gfycatFallbackGifSize int64 = 5000000
)

// Gfycat gets the gifs of gfycat through its OAuth API
type Gfycat struct {
	base
	clientID      string
	clientSecret  string
	tokenEndpoint string
	apiEndpoint   string
	// accessToken is shared between all requests and refreshed in place
	accessToken string
	tokenLock   sync.RWMutex
}

// gfycatTokenResponse is the result of the token endpoint
type gfycatTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// gfycatItemResponse is the result of gfycats/{id} endpoint
type gfycatItemResponse struct {
	GfyItem struct {
		WebmUrl   string `json:"webmUrl"`
		WebmSize  *int64 `json:"webmSize"`
		Max5mbGif string `json:"max5mbGif"`
	} `json:"gfyItem"`
}

// NewGfycat creates the Gfycat service and gets its first access token
func NewGfycat(ctx context.Context, client *http.Client, clientID, clientSecret, tokenEndpoint, apiEndpoint string) (*Gfycat, error) {
	g := &Gfycat{
		base:          base{client: client},
		clientID:      clientID,
		clientSecret:  clientSecret,
		tokenEndpoint: tokenEndpoint,
		apiEndpoint:   strings.TrimSuffix(apiEndpoint, "/"),
	}
	if err := g.Authenticate(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

func (*Gfycat) Name() string {
	return "Gfycat"
}

func (*Gfycat) IsAuthenticated() bool {
	return true
}

// Preprocess extracts the gfycat ID from the url. The IDs are the part before
// the first dash of the path. Like https://gfycat.com/SomeId-some-title
func (g *Gfycat) Preprocess(_ context.Context, link string, _ map[string]interface{}) (Target, error) {
	u, err := url.Parse(link)
	if err != nil {
		return Target{}, errors.Wrap(err, "cannot parse url")
	}
	id, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "-")
	if id == "" {
		return Target{}, errors.New("no gfycat id in url")
	}
	return Target{URL: g.apiEndpoint + "/gfycats/" + id}, nil
}

// Fetch calls the API with the current access token
func (g *Gfycat) Fetch(ctx context.Context, target Target) (*Response, error) {
	g.tokenLock.RLock()
	header := http.Header{"Authorization": {"Bearer " + g.accessToken}}
	g.tokenLock.RUnlock()
	return g.do(ctx, http.MethodGet, target, header, true)
}

// Postprocess returns the mp4 of the gif. If it's too big, the small gif is returned instead.
func (*Gfycat) Postprocess(resp *Response) ([]media.Media, error) {
	var body gfycatItemResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, errors.Wrap(err, "cannot parse response")
	}
	if body.GfyItem.WebmUrl == "" {
		return nil, errors.New("gfyItem.webmUrl is empty")
	}
	return []media.Media{gfycatMedia(body.GfyItem.WebmUrl, body.GfyItem.WebmSize, body.GfyItem.Max5mbGif)}, nil
}

// gfycatMedia applies the size limit to the video
func gfycatMedia(webmUrl string, webmSize *int64, max5mbGif string) media.Media {
	if webmSize != nil && *webmSize > gfycatMaxVideoSize {
		return media.New(max5mbGif, media.ContentTypeGif, media.KnownSize(gfycatFallbackGifSize))
	}
	return media.New(strings.ReplaceAll(webmUrl, ".webm", ".mp4"), media.ContentTypeVideo, webmSize)
}

// Authenticate exchanges the client credentials with a new access token
func (g *Gfycat) Authenticate(ctx context.Context) error {
	payload, _ := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     g.clientID,
		"client_secret": g.clientSecret,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.tokenEndpoint, bytes.NewReader(payload))
	if err != nil {
		return apperr.NewAuthenticationError("", errors.Wrap(err, "cannot create request"))
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := g.client.Do(req)
	if err != nil {
		return apperr.NewAuthenticationError("", errors.Wrap(err, "cannot do the request"))
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		buffer, _ := io.ReadAll(io.LimitReader(resp.Body, 100)) // 100 chars is ok right?
		return apperr.NewAuthenticationError(string(buffer), errors.New("status code is "+resp.Status))
	}
	var body gfycatTokenResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apperr.NewAuthenticationError("", errors.Wrap(err, "cannot parse response"))
	}
	g.tokenLock.Lock()
	g.accessToken = body.AccessToken
	g.tokenLock.Unlock()
	return nil
}
