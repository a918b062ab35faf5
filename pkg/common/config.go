package common

import (
	"net/http"
	"time"
)

// Version is the version of this program :|
const Version = "1.0.0"

// DefaultUserAgent is sent to reddit when no other user agent is configured
const DefaultUserAgent = "TelegramBot:Reddit-Random-Bot:" + Version

// RedditBaseUrl is prepended to permalinks and subreddit names
const RedditBaseUrl = "https://www.reddit.com"

// MaxTitleLength is the length which the text of a post is truncated to
const MaxTitleLength = 200

// GlobalHttpClient is a http client which all request must be done through it
var GlobalHttpClient = http.Client{
	Timeout: time.Second * 10,
}
