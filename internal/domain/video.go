package domain

import (
	"net/url"
	"strings"
)

// VideoSite identifies the hosting site a clip was saved from.
type VideoSite string

const (
	SiteYouTube     VideoSite = "youtube"
	SiteDailymotion VideoSite = "dailymotion"
	SiteVimeo       VideoSite = "vimeo"
	SiteDirect      VideoSite = "direct"
	SiteUnknown     VideoSite = "unknown"
)

// VideoRef is the result of resolving a pasted URL: the detected site plus
// the embed and watch URLs derived from it.
type VideoRef struct {
	Site      VideoSite
	Embedable bool
	EmbedURL  string
	WatchURL  string
}

// hostSites maps known hostnames (without "www.") to their video site.
// Host-to-embed mapping is a plain lookup table, not a heuristic.
var hostSites = map[string]VideoSite{
	"youtube.com":     SiteYouTube,
	"m.youtube.com":   SiteYouTube,
	"youtu.be":        SiteYouTube,
	"dailymotion.com": SiteDailymotion,
	"dai.ly":          SiteDailymotion,
	"vimeo.com":       SiteVimeo,
}

var directExtensions = []string{".mp4", ".webm", ".ogv", ".mov", ".m3u8"}

// ResolveVideoURL detects the hosting site of a raw URL and builds embed and
// watch URLs for it. Unrecognized hosts resolve to SiteUnknown with the
// original URL as the watch URL and no embed.
func ResolveVideoURL(raw string) VideoRef {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return VideoRef{Site: SiteUnknown, WatchURL: raw}
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

	site, ok := hostSites[host]
	if !ok {
		if hasDirectExtension(parsed.Path) {
			return VideoRef{Site: SiteDirect, Embedable: true, EmbedURL: raw, WatchURL: raw}
		}
		return VideoRef{Site: SiteUnknown, WatchURL: raw}
	}

	switch site {
	case SiteYouTube:
		id := youtubeID(host, parsed)
		if id == "" {
			return VideoRef{Site: SiteYouTube, WatchURL: raw}
		}
		return VideoRef{
			Site:      SiteYouTube,
			Embedable: true,
			EmbedURL:  "https://www.youtube.com/embed/" + id,
			WatchURL:  "https://www.youtube.com/watch?v=" + id,
		}
	case SiteDailymotion:
		id := dailymotionID(host, parsed)
		if id == "" {
			return VideoRef{Site: SiteDailymotion, WatchURL: raw}
		}
		return VideoRef{
			Site:      SiteDailymotion,
			Embedable: true,
			EmbedURL:  "https://www.dailymotion.com/embed/video/" + id,
			WatchURL:  "https://www.dailymotion.com/video/" + id,
		}
	case SiteVimeo:
		id := firstPathSegment(parsed.Path)
		if id == "" {
			return VideoRef{Site: SiteVimeo, WatchURL: raw}
		}
		return VideoRef{
			Site:      SiteVimeo,
			Embedable: true,
			EmbedURL:  "https://player.vimeo.com/video/" + id,
			WatchURL:  "https://vimeo.com/" + id,
		}
	}

	return VideoRef{Site: SiteUnknown, WatchURL: raw}
}

func youtubeID(host string, u *url.URL) string {
	if host == "youtu.be" {
		return firstPathSegment(u.Path)
	}
	if id := u.Query().Get("v"); id != "" {
		return id
	}
	// /embed/{id} and /shorts/{id} forms
	for _, prefix := range []string{"/embed/", "/shorts/"} {
		if strings.HasPrefix(u.Path, prefix) {
			return firstPathSegment(strings.TrimPrefix(u.Path, prefix))
		}
	}
	return ""
}

func dailymotionID(host string, u *url.URL) string {
	if host == "dai.ly" {
		return firstPathSegment(u.Path)
	}
	if strings.HasPrefix(u.Path, "/video/") {
		return firstPathSegment(strings.TrimPrefix(u.Path, "/video/"))
	}
	return ""
}

func firstPathSegment(path string) string {
	path = strings.Trim(path, "/")
	if idx := strings.IndexByte(path, '/'); idx != -1 {
		path = path[:idx]
	}
	return path
}

func hasDirectExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range directExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
