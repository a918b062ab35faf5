package bot

import (
	"strings"
	"unicode/utf8"

	"RedditRandomBot/pkg/media"
	"RedditRandomBot/pkg/reddit"
	"RedditRandomBot/pkg/util"
)

// markdownEscaper escapes the reserved characters of MarkdownV2
// See https://core.telegram.org/bots/api#markdownv2-style
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
	"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`, "=", `\=`,
	"|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
)

// linkEscaper escapes the url part of inline links
var linkEscaper = strings.NewReplacer(`\`, `\\`, ")", `\)`)

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// markdownLink creates an inline link with escaped text and url
func markdownLink(text, url string) string {
	return "[" + escapeMarkdown(text) + "](" + linkEscaper.Replace(url) + ")"
}

// postFooter links to the post and its subreddit
func postFooter(post reddit.Post) string {
	return markdownLink("Link to post", post.Permalink) + ` \| ` +
		markdownLink(post.Subreddit, util.PrefixRedditUrl(post.Subreddit))
}

// formatPost creates the MarkdownV2 message of the post: the bold title, the text and the footer
func formatPost(post reddit.Post) string {
	return buildMessage(post, true)
}

// formatCaption is formatPost which fits in a media caption. The text is dropped if it's too long.
func formatCaption(post reddit.Post) string {
	caption := buildMessage(post, true)
	if utf8.RuneCountInString(caption) <= MaxCaptionLength {
		return caption
	}
	return buildMessage(post, false)
}

func buildMessage(post reddit.Post, withText bool) string {
	var sb strings.Builder
	sb.WriteByte('*')
	sb.WriteString(escapeMarkdown(post.Title))
	sb.WriteByte('*')
	text, previewLink := post.Text, ""
	if post.Type() == media.ContentTypeYoutube {
		// The link is already markdown; it must not be escaped
		if link := reddit.YoutubeLink(post.Media.URL); strings.HasSuffix(text, link) {
			text = strings.TrimSuffix(text, link)
		}
		previewLink = "[ ](" + linkEscaper.Replace(post.Media.URL) + ")"
	}
	if withText && text != "" {
		sb.WriteByte('\n')
		sb.WriteString(escapeMarkdown(text))
	}
	sb.WriteString(previewLink)
	sb.WriteString("\n\n")
	sb.WriteString(postFooter(post))
	return sb.String()
}

// generateLinksMessage generates the message which is sent when the media cannot be sent.
// The result is plain text. The medias is the array of links to medias which were meant to be uploaded.
func generateLinksMessage(reason string, medias []string) string {
	var sb strings.Builder
	sb.Grow(len(reason) + len(medias)*120) // each link length I guess
	sb.WriteString(reason)
	if len(medias) == 1 {
		sb.WriteString("\nHere is the link: ")
		sb.WriteString(medias[0])
		return sb.String()
	}
	sb.WriteString("\nHere are the links to the files:")
	for _, m := range medias {
		sb.WriteByte('\n')
		sb.WriteString(m)
	}
	return sb.String()
}
