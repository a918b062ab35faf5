package bot

import (
	"context"
	"time"

	"RedditRandomBot/pkg/apperr"
	"RedditRandomBot/pkg/common"
	"RedditRandomBot/pkg/util"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/go-faster/errors"
	"github.com/rs/zerolog/log"
)

const (
	startMessage = "Hey!\n\nSend me the name of a subreddit like r/pics and I’ll send you a random post from it. You can also send me a Reddit link."
	helpMessage  = "Send me a subreddit name (r/something) to get a random post of it, or a link to a Reddit post to get the post itself. Images, videos and gifs are sent as media; galleries are sent as albums."
	aboutMessage = "Reddit Random Bot v" + common.Version
	noPostFound  = "Please send a subreddit name like r/pics or a Reddit link."
)

// RunBot runs the bot with the specified token
func (c *Client) RunBot(token string, allowedUsers AllowedUsers) error {
	// Setup the bot
	bot, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return errors.Wrap(err, "cannot initialize the bot")
	}
	log.Info().Str("username", bot.Username).Msg("bot authorized on account")
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(_ *gotgbot.Bot, _ *ext.Context, err error) ext.DispatcherAction {
			log.Error().Err(err).Msg("an error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)
	dispatcher.AddHandler(handlers.NewMessage(func(msg *gotgbot.Message) bool {
		return msg.From != nil && allowedUsers.IsAllowed(msg.From.Id)
	}, c.handleMessage))
	// Wait for updates
	err = updater.StartPolling(bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 60,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 60,
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to start polling")
	}
	log.Info().Str("username", bot.User.Username).Msg("bot has been started")

	// Idle, to keep updates coming in, and avoid bot stopping.
	updater.Idle()
	return nil
}

func (c *Client) handleMessage(bot *gotgbot.Bot, ctx *ext.Context) error {
	// Only text messages are allowed
	if ctx.Message.Text == "" {
		_, err := ctx.EffectiveChat.SendMessage(bot, noPostFound, nil)
		return err
	}
	// Check if the message is command. I don't use command handler because I'll lose
	// the userID control.
	if reply, isCommand := commandReply(ctx.Message.Text); isCommand {
		_, err := ctx.EffectiveChat.SendMessage(bot, reply, nil)
		return err
	}
	postCtx, cancel := context.WithTimeout(context.Background(), postTimeout)
	defer cancel()
	return c.fetchPostsAndSend(postCtx, bot, ctx.EffectiveChat.Id, ctx.Message.Text)
}

// commandReply returns the reply of the bot commands
func commandReply(text string) (string, bool) {
	switch text {
	case "/start":
		return startMessage, true
	case "/about":
		return aboutMessage, true
	case "/help":
		return helpMessage, true
	default:
		return "", false
	}
}

// postUrls finds what the user wants in text. Reddit links are preferred; otherwise
// each subreddit name in the text is converted to the url of its random post.
func (c *Client) postUrls(ctx context.Context, text string) []string {
	if urls := util.GetUrlsFromText(ctx, c.HTTPClient, c.UserAgent, text); len(urls) != 0 {
		return urls
	}
	var urls []string
	seen := make(map[string]struct{})
	for _, name := range util.GetSubredditNames(text) {
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		urls = append(urls, util.GetRandomPostUrl(name))
	}
	return urls
}

// fetchPostsAndSend gets the posts which the user requested and sends them
func (c *Client) fetchPostsAndSend(ctx context.Context, bot sender, chatID int64, text string) error {
	urls := c.postUrls(ctx, text)
	if len(urls) == 0 {
		_, err := bot.SendMessage(chatID, noPostFound, nil)
		return err
	}
	stopReportChannel := statusReporter(bot, chatID, gotgbot.ChatActionTyping)
	defer close(stopReportChannel)
	for _, postUrl := range urls {
		post, err := c.Reddit.GetPost(ctx, postUrl)
		if err != nil {
			if _, err = bot.SendMessage(chatID, c.errorMessage(ctx, err), nil); err != nil {
				return err
			}
			continue
		}
		if err = sendPost(bot, chatID, post); err != nil {
			log.Error().Err(err).Str("post_url", post.Permalink).Msg("cannot send post")
			_, err = bot.SendMessage(chatID, generateLinksMessage("I couldn’t send this post.", []string{post.Permalink}), nil)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// errorMessage reports the error and returns the text which must be sent to user
func (c *Client) errorMessage(ctx context.Context, err error) string {
	message := apperr.UserMessage(err)
	if eventID := c.Reporter.Report(ctx, err); eventID != "" {
		message += "\nError ID: " + eventID
	}
	return message
}
