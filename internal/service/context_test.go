package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/clipbook/clipbook/internal/domain"
)

type fakeClipReader struct {
	clips []domain.Clip
	err   error
}

func (f *fakeClipReader) ListRecent(_ context.Context, _ string, limit, _ int) ([]domain.Clip, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.clips) > limit {
		return f.clips[:limit], nil
	}
	return f.clips, nil
}

func (f *fakeClipReader) ListByPlaylist(ctx context.Context, userID, _ string, limit, offset int) ([]domain.Clip, error) {
	return f.ListRecent(ctx, userID, limit, offset)
}

type fakePlaylistReader struct {
	playlist *domain.Playlist
	err      error
}

func (f *fakePlaylistReader) GetByID(_ context.Context, _, _ string) (*domain.Playlist, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.playlist == nil {
		return nil, errors.New("record not found")
	}
	return f.playlist, nil
}

func testClip(title, description string, tags []string, created time.Time) domain.Clip {
	return domain.Clip{
		ID:          "id-" + title,
		UserID:      "u1",
		CustomTitle: title,
		Description: description,
		VideoSite:   domain.SiteYouTube,
		Tags:        domain.StringArray(tags),
		CreatedAt:   created,
	}
}

func TestContextBuilder_EmptyLibrary(t *testing.T) {
	b := NewContextBuilder(&fakeClipReader{}, &fakePlaylistReader{}, ContextBuilderConfig{})

	block, clips := b.Build(context.Background(), "u1", "")
	if !strings.Contains(block, "(no clips)") {
		t.Errorf("empty library block should carry the no-clips marker, got %q", block)
	}
	if len(clips) != 0 {
		t.Errorf("expected no clips, got %d", len(clips))
	}
}

func TestContextBuilder_RendersClipsAndSummary(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	reader := &fakeClipReader{clips: []domain.Clip{
		testClip("Go Concurrency", "Goroutines and channels explained.", []string{"go"}, now),
		testClip("Rust Intro", "Ownership basics.", []string{"rust", "go"}, now.Add(-time.Hour)),
	}}
	b := NewContextBuilder(reader, &fakePlaylistReader{}, ContextBuilderConfig{})

	block, clips := b.Build(context.Background(), "u1", "")
	if len(clips) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(clips))
	}

	for _, want := range []string{
		"Library: all saved clips",
		"1. Go Concurrency",
		"2. Rust Intro",
		"Goroutines and channels explained.",
		"tags: go",
		"saved: 2026-03-01",
		"Tags: go (2), rust (1)",
		"Sites: youtube (2)",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("block missing %q:\n%s", want, block)
		}
	}
}

func TestContextBuilder_PlaylistHeader(t *testing.T) {
	reader := &fakeClipReader{clips: []domain.Clip{
		testClip("Clip A", "", nil, time.Now()),
	}}
	playlists := &fakePlaylistReader{playlist: &domain.Playlist{ID: "p1", Name: "Learning Go"}}
	b := NewContextBuilder(reader, playlists, ContextBuilderConfig{})

	block, _ := b.Build(context.Background(), "u1", "p1")
	if !strings.HasPrefix(block, "Playlist: Learning Go\n") {
		t.Errorf("expected playlist header, got %q", block)
	}
}

func TestContextBuilder_SnippetTruncation(t *testing.T) {
	long := strings.Repeat("x", 500)
	reader := &fakeClipReader{clips: []domain.Clip{
		testClip("Long", long, nil, time.Now()),
	}}
	b := NewContextBuilder(reader, &fakePlaylistReader{}, ContextBuilderConfig{SnippetMaxChars: 40})

	block, _ := b.Build(context.Background(), "u1", "")
	if strings.Contains(block, long) {
		t.Error("description should have been truncated to the snippet limit")
	}
	if !strings.Contains(block, strings.Repeat("x", 40)+"…") {
		t.Error("truncated snippet should end with an ellipsis")
	}
}

func TestContextBuilder_HardCap(t *testing.T) {
	clips := make([]domain.Clip, 20)
	for i := range clips {
		clips[i] = testClip(strings.Repeat("t", 200), strings.Repeat("d", 200), nil, time.Now())
	}
	b := NewContextBuilder(&fakeClipReader{clips: clips}, &fakePlaylistReader{}, ContextBuilderConfig{MaxChars: 500})

	block, _ := b.Build(context.Background(), "u1", "")
	if got := len([]rune(block)); got > 500 {
		t.Errorf("block length %d exceeds the cap", got)
	}
	if !strings.HasSuffix(block, TruncationMarker) {
		t.Errorf("capped block should end with the truncation marker, got %q", block[len(block)-40:])
	}
}

func TestContextBuilder_ReadFailureDegradesToEmpty(t *testing.T) {
	b := NewContextBuilder(&fakeClipReader{err: errors.New("db down")}, &fakePlaylistReader{}, ContextBuilderConfig{})

	block, clips := b.Build(context.Background(), "u1", "")
	if block != "" || clips != nil {
		t.Errorf("read failure should degrade to empty context, got %q", block)
	}
}
