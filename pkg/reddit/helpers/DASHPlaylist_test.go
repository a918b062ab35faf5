package helpers

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

// Trimmed versions of real playlists
const (
	newPlaylist = `<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static">
  <Period duration="PT13S" id="0">
    <AdaptationSet contentType="video" id="0">
      <Representation height="220" id="1" mimeType="video/mp4"><BaseURL>DASH_220.mp4</BaseURL></Representation>
      <Representation height="480" id="4" mimeType="video/mp4"><BaseURL>DASH_480.mp4</BaseURL></Representation>
      <Representation height="360" id="3" mimeType="video/mp4"><BaseURL>DASH_360.mp4</BaseURL></Representation>
    </AdaptationSet>
    <AdaptationSet contentType="audio" id="1">
      <Representation id="5" mimeType="audio/mp4"><BaseURL>DASH_AUDIO_64.mp4</BaseURL></Representation>
    </AdaptationSet>
  </Period>
</MPD>`
	veryOldPlaylist = `<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static">
    <Period duration="PT28.5S">
        <AdaptationSet segmentAlignment="true">
            <Representation id="VIDEO-1" mimeType="video/mp4"><BaseURL>DASH_720</BaseURL></Representation>
            <Representation id="VIDEO-2" mimeType="video/mp4"><BaseURL>DASH_480</BaseURL></Representation>
            <Representation id="AUDIO-1" mimeType="audio/mp4"><BaseURL>audio</BaseURL></Representation>
        </AdaptationSet>
    </Period>
</MPD>`
	audioOnlyPlaylist = `<MPD><Period><AdaptationSet contentType="audio"><Representation><BaseURL>DASH_audio.mp4</BaseURL></Representation></AdaptationSet></Period></MPD>`
)

func TestVideoQuality(t *testing.T) {
	tests := []struct {
		Name     string
		Data     AvailableVideo
		Expected int
	}{
		{
			Name:     "new",
			Data:     "DASH_220.mp4",
			Expected: 220,
		},
		{
			Name:     "old",
			Data:     "DASH_1080",
			Expected: 1080,
		},
		{
			Name:     "no number",
			Data:     "video",
			Expected: 0,
		},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Expected, test.Data.Quality())
		})
	}
}

func TestParseDashPlaylist(t *testing.T) {
	tests := []struct {
		Name     string
		Data     string
		Expected []AvailableVideo
	}{
		{
			Name:     "new",
			Data:     newPlaylist,
			Expected: []AvailableVideo{"DASH_220.mp4", "DASH_480.mp4", "DASH_360.mp4"},
		},
		{
			Name:     "very_old",
			Data:     veryOldPlaylist,
			Expected: []AvailableVideo{"DASH_720", "DASH_480"},
		},
		{
			Name:     "audio_only",
			Data:     audioOnlyPlaylist,
			Expected: nil,
		},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			result, err := ParseDashPlaylist(strings.NewReader(test.Data))
			assert.NoError(t, err)
			assert.Equal(t, test.Expected, result)
		})
	}
}

func TestBestDashVideo(t *testing.T) {
	best, err := BestDashVideo(strings.NewReader(newPlaylist))
	assert.NoError(t, err)
	assert.Equal(t, AvailableVideo("DASH_480.mp4"), best)
	best, err = BestDashVideo(strings.NewReader(veryOldPlaylist))
	assert.NoError(t, err)
	assert.Equal(t, AvailableVideo("DASH_720"), best)
	_, err = BestDashVideo(strings.NewReader(audioOnlyPlaylist))
	assert.ErrorIs(t, err, NoVideoErr)
	_, err = BestDashVideo(strings.NewReader("not xml"))
	assert.Error(t, err)
}
