package models

import "time"

// Section is the GORM model for sections table
type Section struct {
	ID              string      `gorm:"type:uuid;primarykey"`
	Hash            string      `gorm:"size:64;not null;uniqueIndex:idx_sections_hash"`
	OriginText      string      `gorm:"type:text;not null"`
	Description     string      `gorm:"type:text;not null;default:''"`
	Status          int         `gorm:"not null;default:0"`
	PublishedCommit string      `gorm:"size:36;not null;default:''"`
	Parent          StringArray `gorm:"type:jsonb;not null;default:'[]'"`
	ContractUser    *string     `gorm:"size:64;index:idx_sections_contract_user"`
	ContractedAt    *time.Time
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name
func (Section) TableName() string {
	return "sections"
}

// Commit is the GORM model for section_commits table
type Commit struct {
	ID        string    `gorm:"type:uuid;primarykey"`
	SectionID string    `gorm:"type:uuid;not null;index:idx_section_commits_section_id"`
	UserID    string    `gorm:"size:64;not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name
func (Commit) TableName() string {
	return "section_commits"
}
