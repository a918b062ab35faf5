package services

import (
	"context"
	"net/http"

	"RedditRandomBot/pkg/common"
	"RedditRandomBot/pkg/media"
	"RedditRandomBot/pkg/util"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog/log"
)

// Kind is one of the services
type Kind uint8

const (
	KindGeneric Kind = iota
	KindGfycat
	KindVreddit
	KindImgur
	KindYoutube
	KindRedditGallery
)

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "Generic"
	case KindGfycat:
		return "Gfycat"
	case KindVreddit:
		return "Vreddit"
	case KindImgur:
		return "Imgur"
	case KindYoutube:
		return "Youtube"
	case KindRedditGallery:
		return "RedditGallery"
	default:
		return "Unknown"
	}
}

// routes maps the hosts to services. The order matters.
var routes = []struct {
	domains []string
	kind    Kind
}{
	{[]string{"gfycat.com"}, KindGfycat},
	{[]string{"v.redd.it"}, KindVreddit},
	{[]string{"imgur.com"}, KindImgur},
	{[]string{"youtube.com", "youtu.be"}, KindYoutube},
}

// Route finds the service which must handle the url by its host name.
// Galleries are never routed here; the caller must ask for them explicitly.
func Route(link string) Kind {
	for _, route := range routes {
		for _, domain := range route.domains {
			if util.HostContains(link, domain) {
				return route.kind
			}
		}
	}
	log.Info().Str("url", link).Msg("no service found for url, using generic")
	return KindGeneric
}

// Config contains the credentials and the endpoints of services
type Config struct {
	HTTPClient          *http.Client
	GfycatClientID      string
	GfycatClientSecret  string
	GfycatTokenEndpoint string
	GfycatAPIEndpoint   string
	ImgurClientID       string
	ImgurAPIEndpoint    string
}

const (
	DefaultGfycatTokenEndpoint = "https://api.gfycat.com/v1/oauth/token"
	DefaultGfycatAPIEndpoint   = "https://api.gfycat.com/v1"
	DefaultImgurAPIEndpoint    = "https://api.imgur.com/3"
)

func (c *Config) setDefaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &common.GlobalHttpClient
	}
	if c.GfycatTokenEndpoint == "" {
		c.GfycatTokenEndpoint = DefaultGfycatTokenEndpoint
	}
	if c.GfycatAPIEndpoint == "" {
		c.GfycatAPIEndpoint = DefaultGfycatAPIEndpoint
	}
	if c.ImgurAPIEndpoint == "" {
		c.ImgurAPIEndpoint = DefaultImgurAPIEndpoint
	}
}

// Services holds one instance of each service. They are safe for concurrent use.
type Services struct {
	Generic       *Generic
	Gfycat        *Gfycat // nil if no credentials were given
	Vreddit       *Vreddit
	Imgur         *Imgur
	Youtube       *Youtube
	RedditGallery *RedditGallery
}

// NewServices creates all the services. Gfycat authenticates here, so this call
// fails if its credentials are rejected.
func NewServices(ctx context.Context, config Config) (*Services, error) {
	config.setDefaults()
	s := &Services{
		Generic:       NewGeneric(config.HTTPClient),
		Vreddit:       NewVreddit(config.HTTPClient),
		Imgur:         NewImgur(config.HTTPClient, config.ImgurClientID, config.ImgurAPIEndpoint),
		Youtube:       NewYoutube(),
		RedditGallery: NewRedditGallery(),
	}
	if config.GfycatClientID != "" {
		var err error
		s.Gfycat, err = NewGfycat(ctx, config.HTTPClient, config.GfycatClientID, config.GfycatClientSecret,
			config.GfycatTokenEndpoint, config.GfycatAPIEndpoint)
		if err != nil {
			return nil, errors.Wrap(err, "cannot authenticate gfycat")
		}
	} else {
		log.Warn().Msg("gfycat credentials are not set; gfycat links are handled as generic links")
	}
	return s, nil
}

// Get returns the service of kind
func (s *Services) Get(kind Kind) Service {
	switch kind {
	case KindGfycat:
		if s.Gfycat == nil {
			return s.Generic
		}
		return s.Gfycat
	case KindVreddit:
		return s.Vreddit
	case KindImgur:
		return s.Imgur
	case KindYoutube:
		return s.Youtube
	case KindRedditGallery:
		return s.RedditGallery
	default:
		return s.Generic
	}
}

// Resolve gets the media of url with the service of kind
func (s *Services) Resolve(ctx context.Context, kind Kind, url string, data map[string]interface{}) ([]media.Media, error) {
	return GetMedia(ctx, s.Get(kind), url, data)
}

// ResolveMedia routes the url to its service and gets its media
func (s *Services) ResolveMedia(ctx context.Context, url string, data map[string]interface{}) ([]media.Media, error) {
	return s.Resolve(ctx, Route(url), url, data)
}
