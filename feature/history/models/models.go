// Package models defines the persistence models for the load history.
package models

import "time"

// Batch is one finished load pass.
type Batch struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Mode       string    `gorm:"size:16" json:"mode"`
	Total      int       `json:"total"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	CreatedAt  time.Time `json:"-"`
}

// TableName overrides the default GORM table name.
func (Batch) TableName() string {
	return "load_batches"
}

// Resource is the outcome of one resource within a batch.
type Resource struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	BatchID string `gorm:"size:36;index" json:"-"`
	Name    string `gorm:"size:255" json:"name"`
	URL     string `gorm:"size:1024;column:url" json:"url"`
	Size    int    `json:"size"`
	Error   string `gorm:"size:1024" json:"error,omitempty"`
}

// TableName overrides the default GORM table name.
func (Resource) TableName() string {
	return "load_batch_resources"
}
