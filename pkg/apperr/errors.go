package apperr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-faster/errors"
)

// Kind is the kind of failure which an Error represents
type Kind byte

const (
	// KindAuthentication is returned when a service cannot authenticate to its provider
	KindAuthentication Kind = iota + 1
	// KindSubredditPrivate is returned when the subreddit is private and cannot be fetched
	KindSubredditPrivate
	// KindSubredditDoesntExist is returned when the subreddit does not exist.
	// A 404, an empty listing and a redirect to the search page all end up here.
	KindSubredditDoesntExist
	// KindPostRequest is returned when the listing cannot be requested or parsed.
	// Not to be confused with KindPostRetrieval.
	KindPostRequest
	// KindPostRetrieval is returned when the listing is valid but the post inside it is not
	// structured as expected
	KindPostRetrieval
	// KindMediaRetrieval is returned when a media provider answers with a failure
	KindMediaRetrieval
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "AuthenticationError"
	case KindSubredditPrivate:
		return "SubredditPrivateError"
	case KindSubredditDoesntExist:
		return "SubredditDoesntExistError"
	case KindPostRequest:
		return "PostRequestError"
	case KindPostRetrieval:
		return "PostRetrievalError"
	case KindMediaRetrieval:
		return "MediaRetrievalError"
	default:
		return "UnknownError"
	}
}

// Capture says if this kind of error must be sent to the error tracker.
// Subreddit errors are not faults of the application; everything else is.
func (k Kind) Capture() bool {
	switch k {
	case KindSubredditPrivate, KindSubredditDoesntExist:
		return false
	default:
		return true
	}
}

// Message is the text which can be shown to the user
func (k Kind) Message() string {
	switch k {
	case KindAuthentication:
		return "Authentication failed"
	case KindSubredditPrivate:
		return "This subreddit is private."
	case KindSubredditDoesntExist:
		return "This subreddit doesn't exist."
	case KindPostRequest:
		return "I can't find that subreddit."
	case KindPostRetrieval:
		return "The retrieval of the post failed."
	case KindMediaRetrieval:
		return "Error in getting the media"
	default:
		return "Something went wrong."
	}
}

// Error is a typed failure of the application
type Error struct {
	// Kind of this error
	Kind Kind
	// Data is the extra information of the error which is attached to the log and the report.
	// Might be nil.
	Data map[string]string
	// The error which caused this one. Might be nil.
	cause error
}

// New creates a new Error. data and cause can be nil.
func New(kind Kind, data map[string]string, cause error) *Error {
	return &Error{
		Kind:  kind,
		Data:  data,
		cause: cause,
	}
}

// NewAuthenticationError is returned when the token endpoint of a provider rejects us
func NewAuthenticationError(responseText string, cause error) *Error {
	return New(KindAuthentication, map[string]string{"response_text": responseText}, cause)
}

func NewSubredditPrivateError() *Error {
	return New(KindSubredditPrivate, nil, nil)
}

func NewSubredditDoesntExistError() *Error {
	return New(KindSubredditDoesntExist, nil, nil)
}

func NewPostRequestError(postUrl string, cause error) *Error {
	return New(KindPostRequest, map[string]string{"post_url": postUrl}, cause)
}

func NewPostRetrievalError(postUrl string, cause error) *Error {
	return New(KindPostRetrieval, map[string]string{"post_url": postUrl}, cause)
}

// NewMediaRetrievalError is returned when the provider request fails
func NewMediaRetrievalError(service, redditMediaUrl, processedMediaUrl string) *Error {
	return New(KindMediaRetrieval, map[string]string{
		"service":             service,
		"reddit_media_url":    redditMediaUrl,
		"processed_media_url": processedMediaUrl,
	}, nil)
}

// Error returns the message of the kind alongside the data and the cause
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Kind.Message())
	if len(e.Data) != 0 {
		sb.WriteString(" data: ")
		sb.WriteString(e.dataString())
	}
	if e.cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.cause.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// dataString formats the data in a deterministic order
func (e *Error) dataString() string {
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, e.Data[k])
	}
	return strings.Join(parts, " ")
}

// KindOf returns the kind of the first Error in chain of err
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

// Is checks if err is an Error of given kind
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsDomain checks if err is one of the typed errors of the application
func IsDomain(err error) bool {
	_, ok := KindOf(err)
	return ok
}

// UserMessage returns the text which should be shown to the user for err
func UserMessage(err error) string {
	if kind, ok := KindOf(err); ok {
		return kind.Message()
	}
	return Kind(0).Message()
}
