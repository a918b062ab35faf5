package helpers

import (
	"encoding/xml"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// numberRegex will only match numbers in a string
var numberRegex = regexp.MustCompile(`(\d+)`)

// NoVideoErr is returned when the playlist does not list any video
var NoVideoErr = errors.New("no video in playlist")

// dashPlaylistXML is the root of DASHPlaylist.mpd files of v.redd.it
type dashPlaylistXML struct {
	XMLName xml.Name `xml:"MPD"`
	Period  struct {
		MediaTypes []dashAdaptationSet `xml:"AdaptationSet"`
	} `xml:"Period"`
}

// dashAdaptationSet is a group of videos or audios in the playlist
type dashAdaptationSet struct {
	ContentType string               `xml:"contentType,attr"`
	Qualities   []dashRepresentation `xml:"Representation"`
}

// dashRepresentation is each quality of a media type
type dashRepresentation struct {
	BaseURL  string `xml:"BaseURL"`
	ID       string `xml:"id,attr"`
	MimeType string `xml:"mimeType,attr"`
}

// AvailableVideo is the file name of a video quality relative to the v.redd.it video url
type AvailableVideo string

// Quality is the vertical resolution in the file name of the video. It's
// zero if the name does not contain a number.
func (v AvailableVideo) Quality() int {
	numbers := numberRegex.FindStringSubmatch(string(v))
	if len(numbers) < 2 {
		return 0
	}
	quality, _ := strconv.Atoi(numbers[1])
	return quality
}

// ParseDashPlaylist returns the video files listed in a DASHPlaylist.mpd file
func ParseDashPlaylist(r io.Reader) ([]AvailableVideo, error) {
	var parsedXML dashPlaylistXML
	err := xml.NewDecoder(r).Decode(&parsedXML)
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse XML")
	}
	var result []AvailableVideo
	for _, media := range parsedXML.Period.MediaTypes {
		switch media.ContentType {
		case "video":
			for _, video := range media.Qualities {
				result = append(result, AvailableVideo(video.BaseURL))
			}
		case "": // Old videos do not have content type; the ID or mime type says what they are
			for _, m := range media.Qualities {
				if strings.HasPrefix(m.ID, "VIDEO") || strings.HasPrefix(m.MimeType, "video/") {
					result = append(result, AvailableVideo(m.BaseURL))
				}
			}
		}
	}
	return result, nil
}

// BestDashVideo parses the playlist and returns the video with the highest quality
func BestDashVideo(r io.Reader) (AvailableVideo, error) {
	videos, err := ParseDashPlaylist(r)
	if err != nil {
		return "", err
	}
	if len(videos) == 0 {
		return "", NoVideoErr
	}
	best := videos[0]
	for _, video := range videos[1:] {
		if video.Quality() > best.Quality() {
			best = video
		}
	}
	return best, nil
}
