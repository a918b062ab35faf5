package media

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestContentTypeFromString(t *testing.T) {
	tests := []struct {
		TestName string
		Input    string
		Default  ContentType
		Expected ContentType
	}{
		{
			TestName: "Jpg",
			Input:    "https://i.redd.it/kk1x0xw81ij91.jpg",
			Default:  ContentTypeText,
			Expected: ContentTypePhoto,
		},
		{
			TestName: "Jpeg Uppercase",
			Input:    "https://example.com/IMAGE.JPEG",
			Default:  ContentTypeText,
			Expected: ContentTypePhoto,
		},
		{
			TestName: "Png With Query",
			Input:    "https://preview.redd.it/k1u47jv0r0691.png?width=640&format=png",
			Default:  ContentTypeVideo,
			Expected: ContentTypePhoto,
		},
		{
			TestName: "Gif",
			Input:    "https://i.giphy.com/media/gVoBC0SuaHStq/giphy.gif",
			Default:  ContentTypePhoto,
			Expected: ContentTypeGif,
		},
		{
			TestName: "Mp4",
			Input:    "https://i.imgur.com/7ZYm2NC.mp4",
			Default:  ContentTypePhoto,
			Expected: ContentTypeVideo,
		},
		{
			// Photo keywords are checked before gif
			TestName: "Priority",
			Input:    "https://example.com/thumb.jpg?source=anim.gif",
			Default:  ContentTypeText,
			Expected: ContentTypePhoto,
		},
		{
			TestName: "No Match",
			Input:    "https://example.com/page",
			Default:  ContentTypePhoto,
			Expected: ContentTypePhoto,
		},
		{
			TestName: "Empty",
			Input:    "",
			Default:  ContentTypeYoutube,
			Expected: ContentTypeYoutube,
		},
	}
	for _, test := range tests {
		t.Run(test.TestName, func(t *testing.T) {
			assert.Equal(t, test.Expected, ContentTypeFromString(test.Input, test.Default))
		})
	}
}

func TestMediaSize(t *testing.T) {
	assertion := assert.New(t)
	unknown := New("https://example.com/a.jpg", ContentTypePhoto, nil)
	assertion.False(unknown.HasSize())
	assertion.Equal(int64(0), unknown.SizeOrZero())
	zero := New("https://example.com/a.jpg", ContentTypePhoto, KnownSize(0))
	assertion.True(zero.HasSize(), "a zero size is still a reported size")
	known := New("https://example.com/a.mp4", ContentTypeVideo, KnownSize(1234))
	assertion.True(known.HasSize())
	assertion.Equal(int64(1234), known.SizeOrZero())
}
