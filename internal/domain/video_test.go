package domain

import "testing"

func TestResolveVideoURL(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		site      VideoSite
		embedable bool
		embedURL  string
		watchURL  string
	}{
		{
			name:      "youtube watch url",
			raw:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			site:      SiteYouTube,
			embedable: true,
			embedURL:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			watchURL:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:      "youtu.be short link",
			raw:       "https://youtu.be/dQw4w9WgXcQ",
			site:      SiteYouTube,
			embedable: true,
			embedURL:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			watchURL:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:      "youtube shorts",
			raw:       "https://www.youtube.com/shorts/abc123",
			site:      SiteYouTube,
			embedable: true,
			embedURL:  "https://www.youtube.com/embed/abc123",
			watchURL:  "https://www.youtube.com/watch?v=abc123",
		},
		{
			name:     "youtube without video id",
			raw:      "https://www.youtube.com/feed/subscriptions",
			site:     SiteYouTube,
			watchURL: "https://www.youtube.com/feed/subscriptions",
		},
		{
			name:      "dailymotion video",
			raw:       "https://www.dailymotion.com/video/x8abc12",
			site:      SiteDailymotion,
			embedable: true,
			embedURL:  "https://www.dailymotion.com/embed/video/x8abc12",
			watchURL:  "https://www.dailymotion.com/video/x8abc12",
		},
		{
			name:      "dai.ly short link",
			raw:       "https://dai.ly/x8abc12",
			site:      SiteDailymotion,
			embedable: true,
			embedURL:  "https://www.dailymotion.com/embed/video/x8abc12",
			watchURL:  "https://www.dailymotion.com/video/x8abc12",
		},
		{
			name:      "vimeo video",
			raw:       "https://vimeo.com/123456789",
			site:      SiteVimeo,
			embedable: true,
			embedURL:  "https://player.vimeo.com/video/123456789",
			watchURL:  "https://vimeo.com/123456789",
		},
		{
			name:      "direct mp4 file",
			raw:       "https://cdn.example.com/media/talk.mp4",
			site:      SiteDirect,
			embedable: true,
			embedURL:  "https://cdn.example.com/media/talk.mp4",
			watchURL:  "https://cdn.example.com/media/talk.mp4",
		},
		{
			name:     "unknown host",
			raw:      "https://example.com/some/page",
			site:     SiteUnknown,
			watchURL: "https://example.com/some/page",
		},
		{
			name:     "garbage input",
			raw:      "not a url",
			site:     SiteUnknown,
			watchURL: "not a url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ResolveVideoURL(tt.raw)

			if ref.Site != tt.site {
				t.Errorf("Site = %s, want %s", ref.Site, tt.site)
			}
			if ref.Embedable != tt.embedable {
				t.Errorf("Embedable = %v, want %v", ref.Embedable, tt.embedable)
			}
			if ref.EmbedURL != tt.embedURL {
				t.Errorf("EmbedURL = %q, want %q", ref.EmbedURL, tt.embedURL)
			}
			if ref.WatchURL != tt.watchURL {
				t.Errorf("WatchURL = %q, want %q", ref.WatchURL, tt.watchURL)
			}
		})
	}
}
