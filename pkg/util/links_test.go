package util

import (
	"context"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetUrlsFromText(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/html/reddit.app.link/abc", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a href="https://www.reddit.com/r/pics/comments/gjm3ik/hadnt_drawn/?utm_source=share">open</a></body></html>`))
	})
	mux.HandleFunc("/redirect/reddit.app.link/abc", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://www.reddit.com/r/aww/comments/xyz/cat/?utm_source=share", http.StatusTemporaryRedirect)
	})
	mux.HandleFunc("/script/reddit.app.link/abc", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<script>window.location = "https://www.reddit.com/r/funny/comments/fxuefa/weather/?x=1";</script>`))
	})
	mux.HandleFunc("/empty/reddit.app.link/abc", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`nothing`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tests := []struct {
		TestName string
		Text     string
		Expected []string
	}{
		{
			TestName: "Reddit Link",
			Text:     "look https://www.reddit.com/r/pics/comments/gjm3ik/hadnt_drawn/?utm_source=share nice",
			Expected: []string{"https://www.reddit.com/r/pics/comments/gjm3ik/hadnt_drawn"},
		},
		{
			TestName: "Short Link",
			Text:     "https://redd.it/kmi4d3",
			Expected: []string{"https://www.reddit.com/comments/kmi4d3"},
		},
		{
			TestName: "Multiline",
			Text:     "Prop Hunt Was Fun\nhttps://www.reddit.com/r/Unexpected/comments/wul62b/prop_hunt_was_fun/\nhttps://google.com",
			Expected: []string{"https://www.reddit.com/r/Unexpected/comments/wul62b/prop_hunt_was_fun/"},
		},
		{
			TestName: "App Link Anchor",
			Text:     server.URL + "/html/reddit.app.link/abc",
			Expected: []string{"https://www.reddit.com/r/pics/comments/gjm3ik/hadnt_drawn"},
		},
		{
			TestName: "App Link Redirect",
			Text:     server.URL + "/redirect/reddit.app.link/abc",
			Expected: []string{"https://www.reddit.com/r/aww/comments/xyz/cat"},
		},
		{
			TestName: "App Link Script",
			Text:     server.URL + "/script/reddit.app.link/abc",
			Expected: []string{"https://www.reddit.com/r/funny/comments/fxuefa/weather"},
		},
		{
			TestName: "Unresolvable App Link",
			Text:     server.URL + "/empty/reddit.app.link/abc",
			Expected: nil,
		},
		{
			TestName: "No Links",
			Text:     "just some text",
			Expected: nil,
		},
	}
	for _, test := range tests {
		t.Run(test.TestName, func(t *testing.T) {
			assert.Equal(t, test.Expected, GetUrlsFromText(context.Background(), server.Client(), "test", test.Text))
		})
	}
}
