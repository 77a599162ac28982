package models

// Artist représente un artiste du catalogue dans la base de données.
type Artist struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null;index" json:"name"`
}
