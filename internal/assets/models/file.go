package models

import "time"

// File is the GORM model for files table
type File struct {
	ID          string      `gorm:"type:uuid;primarykey"`
	Name        string      `gorm:"size:512;not null;uniqueIndex:idx_files_name"`
	AssetsPath  string      `gorm:"size:1024;not null;default:''"`
	Type        int         `gorm:"not null;default:0"`
	LastUpdated *time.Time  `gorm:"index:idx_files_last_updated,sort:desc"`
	Translated  int         `gorm:"not null;default:0"`
	Corrected   int         `gorm:"not null;default:0"`
	Polished    int         `gorm:"not null;default:0"`
	Sections    StringArray `gorm:"type:jsonb;not null;default:'[]'"`
	Contractors Contractors `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt   time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name
func (File) TableName() string {
	return "files"
}
