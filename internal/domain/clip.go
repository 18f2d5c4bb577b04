package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// MaxTags is the maximum number of tags a clip may carry.
const MaxTags = 3

// StringArray is a custom type for storing string arrays as JSON in the database.
type StringArray []string

// Value implements the driver.Valuer interface for database serialization.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringArray")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, a)
}

// Contains reports whether the array holds the given value.
func (a StringArray) Contains(v string) bool {
	for _, item := range a {
		if item == v {
			return true
		}
	}
	return false
}

// Remove returns a copy of the array without the given value.
func (a StringArray) Remove(v string) StringArray {
	out := make(StringArray, 0, len(a))
	for _, item := range a {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

// Clip represents a saved reference to an external video.
// A clip is owned by a single user and may belong to any number of playlists.
type Clip struct {
	ID              string      `gorm:"type:text;primaryKey" json:"id"`
	UserID          string      `gorm:"type:text;not null;index:idx_clips_user" json:"user_id"`
	OriginalURL     string      `gorm:"type:text;not null" json:"original_url"`
	VideoSite       VideoSite   `gorm:"type:text;index:idx_clips_site" json:"video_site"`
	EmbedURL        string      `gorm:"type:text" json:"embed_url"`
	Embedable       bool        `json:"embedable"`
	WatchURL        string      `gorm:"type:text" json:"watch_url"`
	CustomTitle     string      `gorm:"type:text" json:"custom_title"`
	Description     string      `gorm:"type:text" json:"description"`
	ThumbnailURL    string      `gorm:"type:text" json:"thumbnail_url,omitempty"`
	PlaylistIDs     StringArray `gorm:"type:text" json:"playlist_ids"`
	Tags            StringArray `gorm:"type:text" json:"tags"`
	DurationSeconds int         `json:"duration_seconds"` // 0 means unknown
	Watched         bool        `json:"watched"`
	CreatedAt       time.Time   `gorm:"index:idx_clips_created" json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName returns the database table name for Clip.
func (Clip) TableName() string {
	return "clips"
}

// Title returns the display title for the clip, falling back to the
// watch URL when no custom title was set.
func (c *Clip) Title() string {
	if strings.TrimSpace(c.CustomTitle) != "" {
		return c.CustomTitle
	}
	if c.WatchURL != "" {
		return c.WatchURL
	}
	return c.OriginalURL
}

// NormalizeTags lowercases, trims, and deduplicates tags, preserving first
// occurrence order, and truncates the result to MaxTags entries. The
// operation is idempotent: normalizing an already-normalized list returns
// an equal list.
func NormalizeTags(tags []string) StringArray {
	out := make(StringArray, 0, MaxTags)
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}
