package domain

import "time"

// Playlist is a named, user-owned grouping of clips. Membership lives on the
// clip side (Clip.PlaylistIDs); deleting a playlist removes its id from all
// clips but never deletes the clips themselves.
type Playlist struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	UserID    string    `gorm:"type:text;not null;index:idx_playlists_user" json:"user_id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Playlist.
func (Playlist) TableName() string {
	return "playlists"
}
