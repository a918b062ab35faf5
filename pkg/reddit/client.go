package reddit

import (
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"

	"RedditRandomBot/pkg/apperr"
	"RedditRandomBot/pkg/common"
	"RedditRandomBot/pkg/reddit/services"
	"RedditRandomBot/pkg/util"

	"github.com/go-faster/errors"
)

// Listings bigger than this are not read
const maxListingSize = 20 * 1000 * 1000

// Client gets the posts from reddit and resolves their media
type Client struct {
	services      *services.Services
	httpClient    *http.Client
	userAgent     string
	random        func(n int) int
	maxTextLength int
}

// Option changes the default behaviour of Client
type Option func(*Client)

// WithHTTPClient sets the client used to get the reddit json
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.httpClient = client }
}

// WithUserAgent sets the user agent of requests to reddit. Reddit blocks the default user agent of Go.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRandom sets the function which picks a child of the listing. It must
// return a number in [0, n).
func WithRandom(random func(n int) int) Option {
	return func(c *Client) { c.random = random }
}

// WithMaxTextLength sets the length which the texts of posts are truncated to
func WithMaxTextLength(length int) Option {
	return func(c *Client) { c.maxTextLength = length }
}

// NewClient creates a new reddit client which resolves the media with s
func NewClient(s *services.Services, opts ...Option) *Client {
	c := &Client{
		services:      s,
		httpClient:    &common.GlobalHttpClient,
		userAgent:     common.DefaultUserAgent,
		random:        rand.IntN,
		maxTextLength: common.MaxTitleLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getChildren downloads the json of postUrl and checks if the subreddit is accessible.
// The returned children are never empty.
func (c *Client) getChildren(ctx context.Context, postUrl string) ([]interface{}, error) {
	jsonUrl := strings.TrimSuffix(postUrl, "/") + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jsonUrl, nil)
	if err != nil {
		return nil, apperr.NewPostRequestError(postUrl, errors.Wrap(err, "cannot create request"))
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.NewPostRequestError(postUrl, errors.Wrap(err, "cannot do the request"))
	}
	defer resp.Body.Close()
	var decoded interface{}
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxListingSize)).Decode(&decoded); err != nil {
		return nil, apperr.NewPostRequestError(postUrl, errors.Wrap(err, "cannot parse response"))
	}
	// Some subreddits wrap the listing in an array
	if array, ok := decoded.([]interface{}); ok {
		if len(array) == 0 {
			return nil, apperr.NewPostRequestError(postUrl, errors.New("empty array in response"))
		}
		decoded = array[0]
	}
	root, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, apperr.NewPostRequestError(postUrl, errors.New("response is not a json object"))
	}
	if util.ChainedGetString(root, "", "reason") == "private" {
		return nil, apperr.NewSubredditPrivateError()
	}
	if code, ok := util.ChainedGetInt(root, "error"); ok && code == http.StatusNotFound {
		return nil, apperr.NewSubredditDoesntExistError()
	}
	children, _ := util.ChainedGetSlice(root, "data", "children")
	if len(children) == 0 {
		return nil, apperr.NewSubredditDoesntExistError()
	}
	// Reddit redirects some subreddits which don't exist to the search page
	if finalUrl := resp.Request.URL.String(); finalUrl != jsonUrl && strings.Contains(finalUrl, "search.json") {
		return nil, apperr.NewSubredditDoesntExistError()
	}
	return children, nil
}
