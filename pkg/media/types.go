package media

import "strings"

// ContentType says what kind of content a media or a post is
type ContentType byte

const (
	ContentTypeText ContentType = iota
	ContentTypePhoto
	ContentTypeVideo
	ContentTypeGif
	ContentTypeYoutube
)

func (t ContentType) String() string {
	switch t {
	case ContentTypeText:
		return "text"
	case ContentTypePhoto:
		return "photo"
	case ContentTypeVideo:
		return "video"
	case ContentTypeGif:
		return "gif"
	case ContentTypeYoutube:
		return "youtube"
	default:
		return "unknown"
	}
}

// Keywords of each type. The order of contentTypeKeywords is the priority of matching.
var contentTypeKeywords = [...]struct {
	keywords []string
	t        ContentType
}{
	{[]string{".jpg", ".png", ".jpeg"}, ContentTypePhoto},
	{[]string{".gif"}, ContentTypeGif},
	{[]string{".mp4"}, ContentTypeVideo},
}

// ContentTypeFromString guesses the content type from an url or a file name.
// def is returned if nothing matches.
func ContentTypeFromString(s string, def ContentType) ContentType {
	s = strings.ToLower(s)
	for _, entry := range contentTypeKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(s, keyword) {
				return entry.t
			}
		}
	}
	return def
}

// Media is a resolved media which can be relayed to the user
type Media struct {
	// URL is the direct link to the media
	URL string
	// Type of the media
	Type ContentType
	// Size of the media in bytes. Nil means that the provider did not report it.
	Size *int64
}

// New creates a new Media
func New(url string, t ContentType, size *int64) Media {
	return Media{
		URL:  url,
		Type: t,
		Size: size,
	}
}

// KnownSize is a shorthand to create the Media.Size field
func KnownSize(size int64) *int64 {
	return &size
}

// HasSize checks if the size of media is reported by the provider
func (m Media) HasSize() bool {
	return m.Size != nil
}

// SizeOrZero returns the size of the media or zero if it does not exist.
// Do not use it to check if the media is small.
func (m Media) SizeOrZero() int64 {
	if m.Size == nil {
		return 0
	}
	return *m.Size
}
