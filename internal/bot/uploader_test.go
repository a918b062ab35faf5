package bot

import (
	"strconv"
	"sync"
	"testing"

	"RedditRandomBot/pkg/media"
	"RedditRandomBot/pkg/reddit"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sentItem is a call to fakeSender
type sentItem struct {
	Method  string
	Text    string
	File    gotgbot.InputFileOrString
	Caption string
	Media   []gotgbot.InputMedia
}

// fakeSender records everything which is sent to it
type fakeSender struct {
	mu        sync.Mutex
	sent      []sentItem
	failPhoto bool
}

func (f *fakeSender) add(item sentItem) {
	f.mu.Lock()
	f.sent = append(f.sent, item)
	f.mu.Unlock()
}

func (f *fakeSender) items() []sentItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentItem(nil), f.sent...)
}

func (f *fakeSender) SendMessage(_ int64, text string, _ *gotgbot.SendMessageOpts) (*gotgbot.Message, error) {
	f.add(sentItem{Method: "message", Text: text})
	return &gotgbot.Message{}, nil
}

func (f *fakeSender) SendPhoto(_ int64, photo gotgbot.InputFileOrString, opts *gotgbot.SendPhotoOpts) (*gotgbot.Message, error) {
	f.add(sentItem{Method: "photo", File: photo, Caption: opts.Caption})
	if f.failPhoto {
		return nil, errors.New("Bad Request: wrong file identifier/HTTP URL specified")
	}
	return &gotgbot.Message{}, nil
}

func (f *fakeSender) SendVideo(_ int64, video gotgbot.InputFileOrString, opts *gotgbot.SendVideoOpts) (*gotgbot.Message, error) {
	f.add(sentItem{Method: "video", File: video, Caption: opts.Caption})
	return &gotgbot.Message{}, nil
}

func (f *fakeSender) SendAnimation(_ int64, animation gotgbot.InputFileOrString, opts *gotgbot.SendAnimationOpts) (*gotgbot.Message, error) {
	f.add(sentItem{Method: "animation", File: animation, Caption: opts.Caption})
	return &gotgbot.Message{}, nil
}

func (f *fakeSender) SendMediaGroup(_ int64, inputs []gotgbot.InputMedia, _ *gotgbot.SendMediaGroupOpts) ([]gotgbot.Message, error) {
	f.add(sentItem{Method: "group", Media: inputs})
	return make([]gotgbot.Message, len(inputs)), nil
}

func (f *fakeSender) SendChatAction(int64, string, *gotgbot.SendChatActionOpts) (bool, error) {
	return true, nil
}

func testPost(medias ...media.Media) reddit.Post {
	post := reddit.Post{
		Subreddit: "r/pics",
		Permalink: "https://www.reddit.com/r/pics/comments/a1/post/",
		Title:     "Title",
	}
	if len(medias) > 0 {
		post.Media = &medias[0]
		post.Album = medias
	}
	return post
}

func TestCanSendByUrl(t *testing.T) {
	tests := []struct {
		TestName string
		Media    media.Media
		Expected bool
	}{
		{"Unknown Size", media.New("https://a", media.ContentTypeVideo, nil), true},
		{"Small Photo", media.New("https://a", media.ContentTypePhoto, media.KnownSize(PhotoMaxUrlSize)), true},
		{"Big Photo", media.New("https://a", media.ContentTypePhoto, media.KnownSize(PhotoMaxUrlSize+1)), false},
		{"Video", media.New("https://a", media.ContentTypeVideo, media.KnownSize(PhotoMaxUrlSize+1)), true},
		{"Big Gif", media.New("https://a", media.ContentTypeGif, media.KnownSize(RegularMaxUrlSize+1)), false},
	}
	for _, test := range tests {
		t.Run(test.TestName, func(t *testing.T) {
			assert.Equal(t, test.Expected, canSendByUrl(test.Media))
		})
	}
}

func TestSendPost(t *testing.T) {
	photo := media.New("https://i.redd.it/a.jpg", media.ContentTypePhoto, nil)
	video := media.New("https://i.imgur.com/b.mp4", media.ContentTypeVideo, media.KnownSize(1000))
	gif := media.New("https://v.redd.it/c/DASH_720.mp4", media.ContentTypeGif, media.KnownSize(1000))
	tests := []struct {
		TestName string
		Post     reddit.Post
		Methods  []string
	}{
		{"Text", testPost(), []string{"message"}},
		{"Youtube", testPost(media.New("https://youtu.be/x", media.ContentTypeYoutube, nil)), []string{"message"}},
		{"Photo", testPost(photo), []string{"photo"}},
		{"Video", testPost(video), []string{"video"}},
		{"Gif", testPost(gif), []string{"animation"}},
		{"Too Big", testPost(media.New("https://i.redd.it/a.jpg", media.ContentTypePhoto, media.KnownSize(PhotoMaxUrlSize+1))), []string{"message"}},
		{"Album", testPost(photo, video), []string{"group"}},
	}
	for _, test := range tests {
		t.Run(test.TestName, func(t *testing.T) {
			bot := new(fakeSender)
			require.NoError(t, sendPost(bot, 1, test.Post))
			sent := bot.items()
			methods := make([]string, len(sent))
			for i, item := range sent {
				methods[i] = item.Method
			}
			assert.Equal(t, test.Methods, methods)
		})
	}
}

func TestSendMediaByUrl(t *testing.T) {
	photo := media.New("https://i.redd.it/a.jpg", media.ContentTypePhoto, nil)
	post := testPost(photo)
	bot := new(fakeSender)
	require.NoError(t, sendPost(bot, 1, post))
	sent := bot.items()
	require.Len(t, sent, 1)
	assert.Equal(t, gotgbot.InputFileByURL(photo.URL), sent[0].File)
	assert.Equal(t, formatCaption(post), sent[0].Caption)
}

func TestSendMediaFallback(t *testing.T) {
	bot := &fakeSender{failPhoto: true}
	require.NoError(t, sendPost(bot, 1, testPost(media.New("https://i.redd.it/a.jpg", media.ContentTypePhoto, nil))))
	sent := bot.items()
	require.Len(t, sent, 2)
	assert.Equal(t, "photo", sent[0].Method)
	assert.Equal(t, "message", sent[1].Method)
	assert.Contains(t, sent[1].Text, "I couldn’t upload this media")
	assert.Contains(t, sent[1].Text, `https://i\.redd\.it/a\.jpg`)
}

func TestSendAlbum(t *testing.T) {
	medias := make([]media.Media, 11)
	for i := range medias {
		medias[i] = media.New("https://i.redd.it/"+strconv.Itoa(i)+".jpg", media.ContentTypePhoto, nil)
	}
	post := testPost(medias...)
	bot := new(fakeSender)
	require.NoError(t, sendPost(bot, 1, post))
	sent := bot.items()
	require.Len(t, sent, 2)
	assert.Equal(t, "group", sent[0].Method)
	require.Len(t, sent[0].Media, MaxAlbumSize)
	assert.Equal(t, formatCaption(post), sent[0].Media[0].(gotgbot.InputMediaPhoto).Caption)
	assert.Empty(t, sent[0].Media[1].(gotgbot.InputMediaPhoto).Caption)
	// The last one is alone and without caption
	assert.Equal(t, "photo", sent[1].Method)
	assert.Equal(t, gotgbot.InputFileByURL(medias[10].URL), sent[1].File)
	assert.Empty(t, sent[1].Caption)
}

func TestSendAlbumTooBig(t *testing.T) {
	small := media.New("https://i.redd.it/small.jpg", media.ContentTypePhoto, nil)
	video := media.New("https://preview.redd.it/v.gif?format=mp4", media.ContentTypeVideo, nil)
	big := media.New("https://i.redd.it/big.jpg", media.ContentTypePhoto, media.KnownSize(PhotoMaxUrlSize*2))
	bot := new(fakeSender)
	require.NoError(t, sendPost(bot, 1, testPost(small, big, video)))
	sent := bot.items()
	require.Len(t, sent, 2)
	assert.Equal(t, "group", sent[0].Method)
	require.Len(t, sent[0].Media, 2)
	assert.IsType(t, gotgbot.InputMediaVideo{}, sent[0].Media[1])
	assert.Equal(t, "message", sent[1].Method)
	assert.Contains(t, sent[1].Text, big.URL)

	bot = new(fakeSender)
	require.NoError(t, sendPost(bot, 1, testPost(big, big)))
	sent = bot.items()
	require.Len(t, sent, 1)
	assert.Equal(t, "message", sent[0].Method)
}
