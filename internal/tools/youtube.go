package tools

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mwozniczak/agenttools/internal/domain/tool"
)

// YouTubeTranscript fetches a video's caption track through the
// timedtext endpoint and joins the entries into plain text.
type YouTubeTranscript struct {
	baseURL    string
	httpClient *http.Client
}

func NewYouTubeTranscript() *YouTubeTranscript {
	return &YouTubeTranscript{
		baseURL:    "https://video.google.com/timedtext",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (*YouTubeTranscript) Name() string { return "youtube_transcript" }

func (*YouTubeTranscript) Description() string {
	return "Fetches and returns the transcript of a YouTube video. Supports multiple languages."
}

func (*YouTubeTranscript) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "url",
			Type:        tool.TypeString,
			Required:    true,
			Description: "The URL of the YouTube video to fetch transcript for",
		},
		tool.Field{
			Name:        "language",
			Type:        tool.TypeString,
			Default:     "en",
			Description: "Language code for the transcript (default: 'en')",
		},
	)
}

// extractVideoID pulls the v= parameter out of a watch URL.
func extractVideoID(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if id := parsed.Query().Get("v"); id != "" {
		return id, nil
	}
	// Short youtu.be links carry the id as the path.
	if parsed.Host == "youtu.be" {
		if id := strings.Trim(parsed.Path, "/"); id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("no video id in %q", raw)
}

type timedText struct {
	Texts []struct {
		Body string `xml:",chardata"`
	} `xml:"text"`
}

func (t *YouTubeTranscript) Run(ctx context.Context, args tool.Args) []tool.Content {
	videoURL := args.String("url")
	language := args.String("language")

	if videoURL == "" {
		return tool.Textf("Error: URL is required")
	}

	videoID, err := extractVideoID(videoURL)
	if err != nil {
		return tool.Textf("Error fetching transcript: %v", err)
	}

	endpoint := fmt.Sprintf("%s?lang=%s&v=%s", t.baseURL,
		url.QueryEscape(language), url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return tool.Textf("Error fetching transcript: %v", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return tool.Textf("Error fetching transcript: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return tool.Textf("Error fetching transcript: status %d", resp.StatusCode)
	}

	var parsed timedText
	if err := xml.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return tool.Textf("Error: No transcript available for this video")
	}
	if len(parsed.Texts) == 0 {
		return tool.Textf("Error: No transcript available for this video")
	}

	lines := make([]string, 0, len(parsed.Texts))
	for _, entry := range parsed.Texts {
		if body := strings.TrimSpace(entry.Body); body != "" {
			lines = append(lines, body)
		}
	}
	return tool.Textf("%s", strings.Join(lines, " "))
}

// Ytb2Mp4Transcript fetches a transcript through the ytb2mp4.com API.
type Ytb2Mp4Transcript struct {
	baseURL    string
	httpClient *http.Client
}

func NewYtb2Mp4Transcript() *Ytb2Mp4Transcript {
	return &Ytb2Mp4Transcript{
		baseURL:    "https://ytb2mp4.com/api/fetch-transcript",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (*Ytb2Mp4Transcript) Name() string { return "ytb2mp4_transcript" }

func (*Ytb2Mp4Transcript) Description() string {
	return "Fetches and returns the transcript of a YouTube video using ytb2mp4 API."
}

func (*Ytb2Mp4Transcript) Schema() tool.Schema {
	return tool.NewSchema(
		tool.Field{
			Name:        "url",
			Type:        tool.TypeString,
			Required:    true,
			Description: "The URL of the YouTube video to fetch transcript for",
		},
	)
}

func (t *Ytb2Mp4Transcript) Run(ctx context.Context, args tool.Args) []tool.Content {
	videoURL := args.String("url")
	if videoURL == "" {
		return tool.Textf("Error: URL is required")
	}

	endpoint := t.baseURL + "?url=" + url.QueryEscape(videoURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return tool.Textf("Error fetching transcript: %v", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return tool.Textf("Error fetching transcript: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return tool.Textf("Error fetching transcript: status %d", resp.StatusCode)
	}

	var payload struct {
		Transcript string `json:"transcript"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return tool.Textf("An unexpected error occurred: %v", err)
	}
	return tool.Textf("%s", payload.Transcript)
}
