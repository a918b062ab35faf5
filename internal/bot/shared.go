package bot

import "time"

// Telegram downloads the files sent by url itself, but with smaller limits than uploads.
// See https://core.telegram.org/bots/api#sending-files
const (
	PhotoMaxUrlSize   = 5 * 1000 * 1000 // these must be 1000 not 1024
	RegularMaxUrlSize = 20 * 1000 * 1000
)

// MaxAlbumSize is the most media which can be sent in one media group
const MaxAlbumSize = 10

// MaxCaptionLength is the limit of Telegram for media captions
const MaxCaptionLength = 1024

// How long we wait for a post and its media
const postTimeout = 2 * time.Minute
