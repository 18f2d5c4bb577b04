package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/clipbook/clipbook/internal/domain"
	"github.com/clipbook/clipbook/internal/logger"
)

// TruncationMarker terminates a context block that hit the length cap.
const TruncationMarker = "…[context truncated]"

// ClipReader is the read surface the assistant needs over saved clips.
// *repository.ClipRepository satisfies it.
type ClipReader interface {
	ListRecent(ctx context.Context, userID string, limit, offset int) ([]domain.Clip, error)
	ListByPlaylist(ctx context.Context, userID, playlistID string, limit, offset int) ([]domain.Clip, error)
}

// PlaylistReader is the read surface the assistant needs over playlists.
// *repository.PlaylistRepository satisfies it.
type PlaylistReader interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Playlist, error)
}

// ContextBuilderConfig bounds the rendered context block.
type ContextBuilderConfig struct {
	MaxClips        int // most-recent clips included
	MaxChars        int // hard cap on the rendered block
	SnippetMaxChars int // per-clip description snippet length
}

// ContextBuilder assembles the bounded textual snapshot of a user's library
// that is injected into assistant prompts.
type ContextBuilder struct {
	clips     ClipReader
	playlists PlaylistReader
	cfg       ContextBuilderConfig
}

// NewContextBuilder creates a ContextBuilder. Zero config values fall back
// to 20 clips, 16000 chars, and 160-char snippets.
func NewContextBuilder(clips ClipReader, playlists PlaylistReader, cfg ContextBuilderConfig) *ContextBuilder {
	if cfg.MaxClips <= 0 {
		cfg.MaxClips = 20
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = 16000
	}
	if cfg.SnippetMaxChars <= 0 {
		cfg.SnippetMaxChars = 160
	}
	return &ContextBuilder{
		clips:     clips,
		playlists: playlists,
		cfg:       cfg,
	}
}

// Build renders the context block for a user and returns it together with
// the clips it covers. When playlistID is non-empty the block covers that
// playlist's clips, otherwise the whole library. Read failures degrade to an
// empty block; the chat flow must keep working without context.
func (b *ContextBuilder) Build(ctx context.Context, userID, playlistID string) (string, []domain.Clip) {
	clips, header, err := b.load(ctx, userID, playlistID)
	if err != nil {
		logger.CtxWarn(ctx, "context build degraded to empty: %v", err)
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")

	if len(clips) == 0 {
		sb.WriteString("(no clips)\n")
		return b.capLength(sb.String()), nil
	}

	for i, clip := range clips {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, clip.Title()))
		if snippet := truncateRunes(strings.TrimSpace(clip.Description), b.cfg.SnippetMaxChars); snippet != "" {
			sb.WriteString("   " + snippet + "\n")
		}
		meta := []string{"site: " + string(clip.VideoSite)}
		if len(clip.Tags) > 0 {
			meta = append(meta, "tags: "+strings.Join(clip.Tags, ", "))
		}
		if clip.DurationSeconds > 0 {
			meta = append(meta, fmt.Sprintf("duration: %ds", clip.DurationSeconds))
		}
		if clip.Watched {
			meta = append(meta, "watched")
		}
		meta = append(meta, "saved: "+clip.CreatedAt.Format("2006-01-02"))
		sb.WriteString("   (" + strings.Join(meta, " | ") + ")\n")
	}

	sb.WriteString(b.summaryFooter(clips))

	return b.capLength(sb.String()), clips
}

func (b *ContextBuilder) load(ctx context.Context, userID, playlistID string) ([]domain.Clip, string, error) {
	if playlistID == "" {
		clips, err := b.clips.ListRecent(ctx, userID, b.cfg.MaxClips, 0)
		if err != nil {
			return nil, "", fmt.Errorf("list recent clips: %w", err)
		}
		return clips, "Library: all saved clips", nil
	}

	header := "Playlist: (unknown)"
	if playlist, err := b.playlists.GetByID(ctx, userID, playlistID); err == nil && playlist != nil {
		header = "Playlist: " + playlist.Name
	}

	clips, err := b.clips.ListByPlaylist(ctx, userID, playlistID, b.cfg.MaxClips, 0)
	if err != nil {
		return nil, "", fmt.Errorf("list playlist clips: %w", err)
	}
	return clips, header, nil
}

// summaryFooter renders tag and site counts over the included clips.
func (b *ContextBuilder) summaryFooter(clips []domain.Clip) string {
	tagCounts := map[string]int{}
	siteCounts := map[string]int{}
	for _, clip := range clips {
		for _, tag := range clip.Tags {
			tagCounts[tag]++
		}
		siteCounts[string(clip.VideoSite)]++
	}

	var sb strings.Builder
	if len(tagCounts) > 0 {
		sb.WriteString("Tags: " + formatCounts(tagCounts) + "\n")
	}
	sb.WriteString("Sites: " + formatCounts(siteCounts) + "\n")
	return sb.String()
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s (%d)", k, counts[k])
	}
	return strings.Join(parts, ", ")
}

// capLength enforces the hard cap, always ending a truncated block with the
// truncation marker.
func (b *ContextBuilder) capLength(s string) string {
	runes := []rune(s)
	if len(runes) <= b.cfg.MaxChars {
		return s
	}
	marker := []rune(TruncationMarker)
	return string(runes[:b.cfg.MaxChars-len(marker)]) + TruncationMarker
}

// truncateRunes shortens s to at most max runes, appending an ellipsis when
// anything was cut.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
