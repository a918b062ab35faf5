package reddit

import "RedditRandomBot/pkg/media"

// Post is a reddit post which is ready to be sent to user
type Post struct {
	// Subreddit is prefixed with r/
	Subreddit string
	// Permalink is the full link to the post on reddit
	Permalink string
	Title     string
	// Text is the (truncated) self text of the post.
	// For youtube posts, YoutubeLink of the video is appended to it.
	Text string
	// Media is nil for text posts and links to other reddit threads
	Media *media.Media
	// Album is every media which the service returned. Its first element is Media.
	Album []media.Media
}

// Type is the type of the media of post or ContentTypeText if it has no media
func (p Post) Type() media.ContentType {
	if p.Media == nil {
		return media.ContentTypeText
	}
	return p.Media.Type
}

// IsAlbum is true if the post has more than one media
func (p Post) IsAlbum() bool {
	return len(p.Album) > 1
}

// YoutubeLink is an empty markdown link to the video. Telegram shows the
// preview of the video for this link.
func YoutubeLink(url string) string {
	return "[ ](" + url + ")"
}
