package bot

import (
	"time"

	"RedditRandomBot/pkg/media"
	"RedditRandomBot/pkg/reddit"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/zerolog/log"
)

// sender is the part of the bot API which is used to send posts. *gotgbot.Bot implements it.
type sender interface {
	SendMessage(chatId int64, text string, opts *gotgbot.SendMessageOpts) (*gotgbot.Message, error)
	SendPhoto(chatId int64, photo gotgbot.InputFileOrString, opts *gotgbot.SendPhotoOpts) (*gotgbot.Message, error)
	SendVideo(chatId int64, video gotgbot.InputFileOrString, opts *gotgbot.SendVideoOpts) (*gotgbot.Message, error)
	SendAnimation(chatId int64, animation gotgbot.InputFileOrString, opts *gotgbot.SendAnimationOpts) (*gotgbot.Message, error)
	SendMediaGroup(chatId int64, media []gotgbot.InputMedia, opts *gotgbot.SendMediaGroupOpts) ([]gotgbot.Message, error)
	SendChatAction(chatId int64, action string, opts *gotgbot.SendChatActionOpts) (bool, error)
}

// sendPost sends the post to chat based on its type
func sendPost(bot sender, chatID int64, post reddit.Post) error {
	switch {
	case post.Type() == media.ContentTypeText || post.Type() == media.ContentTypeYoutube:
		return sendText(bot, chatID, post)
	case post.IsAlbum():
		return sendAlbum(bot, chatID, post)
	default:
		return sendMedia(bot, chatID, post)
	}
}

// sendText sends the post as a text message. Only youtube posts have a preview.
func sendText(bot sender, chatID int64, post reddit.Post) error {
	_, err := bot.SendMessage(chatID, formatPost(post), &gotgbot.SendMessageOpts{
		ParseMode: gotgbot.ParseModeMarkdownV2,
		LinkPreviewOptions: &gotgbot.LinkPreviewOptions{
			IsDisabled: post.Type() != media.ContentTypeYoutube,
		},
	})
	return err
}

// sendMedia sends the single media of post with its caption. If Telegram cannot
// download the media, the post is sent as text with the link of media.
func sendMedia(bot sender, chatID int64, post reddit.Post) error {
	m := *post.Media
	if !canSendByUrl(m) {
		return sendMediaLinks(bot, chatID, post, "The file is too large to upload on Telegram.", []string{m.URL})
	}
	if err := sendFile(bot, chatID, m, formatCaption(post)); err != nil {
		log.Warn().Err(err).Str("post_url", post.Permalink).Str("media_url", m.URL).Msg("unable to send media")
		return sendMediaLinks(bot, chatID, post, "I couldn’t upload this media.", []string{m.URL})
	}
	return nil
}

// sendFile sends m by its url based on its type
func sendFile(bot sender, chatID int64, m media.Media, caption string) error {
	var err error
	file := gotgbot.InputFileByURL(m.URL)
	switch m.Type {
	case media.ContentTypePhoto:
		_, err = bot.SendPhoto(chatID, file, &gotgbot.SendPhotoOpts{
			Caption:   caption,
			ParseMode: gotgbot.ParseModeMarkdownV2,
		})
	case media.ContentTypeVideo:
		_, err = bot.SendVideo(chatID, file, &gotgbot.SendVideoOpts{
			Caption:           caption,
			ParseMode:         gotgbot.ParseModeMarkdownV2,
			SupportsStreaming: true,
		})
	case media.ContentTypeGif:
		_, err = bot.SendAnimation(chatID, file, &gotgbot.SendAnimationOpts{
			Caption:   caption,
			ParseMode: gotgbot.ParseModeMarkdownV2,
		})
	}
	return err
}

// sendAlbum sends the album in groups of MaxAlbumSize. The caption is attached to the first media.
func sendAlbum(bot sender, chatID int64, post reddit.Post) error {
	var sendable []media.Media
	var tooBig []string
	for _, m := range post.Album {
		if canSendByUrl(m) {
			sendable = append(sendable, m)
		} else {
			tooBig = append(tooBig, m.URL)
		}
	}
	if len(sendable) == 0 {
		return sendMediaLinks(bot, chatID, post, "The files are too large to upload on Telegram.", tooBig)
	}
	var err error
	caption := formatCaption(post)
	for start := 0; start < len(sendable); start += MaxAlbumSize {
		chunk := sendable[start:min(start+MaxAlbumSize, len(sendable))]
		if start > 0 {
			caption = ""
		}
		// Media groups must have at least two members
		if len(chunk) == 1 {
			err = sendFile(bot, chatID, chunk[0], caption)
		} else {
			inputs := make([]gotgbot.InputMedia, len(chunk))
			for i, m := range chunk {
				inputs[i] = inputMedia(m, i == 0, caption)
			}
			_, err = bot.SendMediaGroup(chatID, inputs, nil)
		}
		if err != nil {
			log.Warn().Err(err).Str("post_url", post.Permalink).Msg("unable to upload gallery")
			_, err = bot.SendMessage(chatID, generateLinksMessage("I couldn’t upload the media.", mediaUrls(chunk)), nil)
		}
	}
	if len(tooBig) != 0 {
		_, err = bot.SendMessage(chatID, generateLinksMessage("Some files are too large to upload on Telegram.", tooBig), nil)
	}
	return err
}

func mediaUrls(medias []media.Media) []string {
	urls := make([]string, len(medias))
	for i, m := range medias {
		urls[i] = m.URL
	}
	return urls
}

// inputMedia creates an album member from m. Only the first member has the caption.
func inputMedia(m media.Media, first bool, caption string) gotgbot.InputMedia {
	if !first {
		caption = ""
	}
	file := gotgbot.InputFileByURL(m.URL)
	if m.Type == media.ContentTypePhoto {
		return gotgbot.InputMediaPhoto{Media: file, Caption: caption, ParseMode: gotgbot.ParseModeMarkdownV2}
	}
	return gotgbot.InputMediaVideo{Media: file, Caption: caption, ParseMode: gotgbot.ParseModeMarkdownV2, SupportsStreaming: true}
}

// sendMediaLinks sends the post as a text with the links of its media
func sendMediaLinks(bot sender, chatID int64, post reddit.Post, reason string, links []string) error {
	_, err := bot.SendMessage(chatID, formatPost(post)+"\n\n"+escapeMarkdown(generateLinksMessage(reason, links)), &gotgbot.SendMessageOpts{
		ParseMode: gotgbot.ParseModeMarkdownV2,
	})
	return err
}

// canSendByUrl checks if Telegram accepts the media by its url.
// Media without a known size are always tried.
func canSendByUrl(m media.Media) bool {
	if !m.HasSize() {
		return true
	}
	limit := int64(RegularMaxUrlSize)
	if m.Type == media.ContentTypePhoto {
		limit = PhotoMaxUrlSize
	}
	return m.SizeOrZero() <= limit
}

// statusReporter starts reporting an action in telegram
// This function returns a channel which a message must be sent to it when reporting must be stopped
// You can also close the channel to stop the reporter.
func statusReporter(bot sender, chatID int64, action string) chan struct{} {
	doneChan := make(chan struct{}, 1)
	go statusReporterGoroutine(bot, chatID, action, doneChan)
	return doneChan
}

// statusReporterGoroutine must be called from another goroutine to report the status
func statusReporterGoroutine(bot sender, chatID int64, action string, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second * 5) // we have to send it each 5 seconds
	_, _ = bot.SendChatAction(chatID, action, nil)
	for {
		select {
		case <-ticker.C:
			_, _ = bot.SendChatAction(chatID, action, nil)
		case <-done:
			ticker.Stop()
			return
		}
	}
}
