package models

// Vinyl represents a record stored in the database.
// Each vinyl belongs to exactly one Artist through ArtistID.
type Vinyl struct {
	// ID is the primary key with auto-increment functionality
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the natural key used to deduplicate creations
	Name string `gorm:"size:255;not null;index" json:"name"`

	// ArtistID references Artist.ID
	// - index: keeps list-by-artist and the delete guard cheap
	ArtistID uint `gorm:"not null;index" json:"artist_id"`

	// ArtistName is never stored in the vinyls table.
	// - ->: read-only, filled by the join on artists.name
	// - -:migration: no column is created for it
	ArtistName string `gorm:"->;-:migration" json:"artist_name"`

	// AddedDate is the Unix timestamp (seconds) of creation, immutable afterwards
	AddedDate int64 `gorm:"not null" json:"added_date"`

	// CoverFileName names a file in the image directory; its presence is not enforced
	CoverFileName string `gorm:"size:255" json:"cover_file_name"`
}

// VinylInput carries the client-writable fields of a Vinyl.
// ArtistName is accepted for compatibility but the stored artist's name always wins.
type VinylInput struct {
	Name          string `json:"name" binding:"required"`
	ArtistID      uint   `json:"artist_id" binding:"required,min=1"`
	ArtistName    string `json:"artist_name"`
	CoverFileName string `json:"cover_file_name"`
}
