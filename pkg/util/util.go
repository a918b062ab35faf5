package util

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"RedditRandomBot/pkg/common"
)

// IsUrl checks if a string is an url
// From https://stackoverflow.com/a/55551215/4213397
func IsUrl(str string) bool {
	u, err := url.Parse(str)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// HostContains checks if the host of link contains domain. Case is ignored.
// Returns false if the link cannot be parsed.
func HostContains(link, domain string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(u.Host), strings.ToLower(domain))
}

// AnyStr checks if s contains any of the candidates
func AnyStr(candidates []string, s string) bool {
	for _, candidate := range candidates {
		if strings.Contains(s, candidate) {
			return true
		}
	}
	return false
}

// TruncateText cuts the text to length runes and appends an ellipsis if something was cut
func TruncateText(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length]) + "..."
}

// PolishText replaces the new lines with spaces
func PolishText(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}

// PrefixRedditUrl makes a reddit path absolute. Like /r/pics -> https://www.reddit.com/r/pics
func PrefixRedditUrl(path string) string {
	if IsUrl(path) {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return common.RedditBaseUrl + path
}

// GetRandomPostUrl returns the url which redirects to a random post of subreddit.
// subreddit must be prefixed with r/
func GetRandomPostUrl(subreddit string) string {
	return common.RedditBaseUrl + "/" + subreddit + "/random"
}

// subredditRegex is the official validation of subreddit names
// See https://github.com/reddit-archive/reddit/blob/master/r2/r2/models/subreddit.py#L114
var subredditRegex = regexp.MustCompile(`\br/[A-Za-z0-9][A-Za-z0-9_]{2,20}`)

// GetSubredditNames returns all (r/ prefixed) subreddit names in text
func GetSubredditNames(text string) []string {
	var result []string
	for _, match := range subredditRegex.FindAllStringIndex(text, -1) {
		if subredditNameEnds(text, match[1]) {
			result = append(result, text[match[0]:match[1]])
		}
	}
	return result
}

// GetSubredditName returns the first (or last if reverse is true) subreddit name of text
func GetSubredditName(text string, reverse bool) (string, bool) {
	subs := GetSubredditNames(text)
	if len(subs) == 0 {
		return "", false
	}
	if reverse {
		return subs[len(subs)-1], true
	}
	return subs[0], true
}

// subredditNameEnds checks what comes after a matched name. A name is valid if it's followed by
// the end of line, a whitespace, a slash or a symbol which itself is followed by space or end of line.
func subredditNameEnds(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	next := rune(text[end])
	if unicode.IsSpace(next) || next == '/' {
		return true
	}
	if isWordChar(next) {
		return false
	}
	return end+1 >= len(text) || text[end+1] == ' ' || text[end+1] == '\n'
}

func isWordChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
