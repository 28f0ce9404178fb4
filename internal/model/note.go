package model

import (
	"github.com/haierkeys/fast-note-folder-service/pkg/timex"

	"github.com/google/uuid"
)

const TableNameNote = "note"

// Note mapped from table <note>
type Note struct {
	ID           uuid.UUID  `gorm:"column:id;type:char(36);primaryKey" json:"id" form:"id"`
	Title        string     `gorm:"column:title;not null;default:''" json:"title" form:"title"`
	OwnerID      int64      `gorm:"column:owner_id;not null;index:idx_note_owner" json:"ownerId" form:"ownerId"`
	FolderID     *uuid.UUID `gorm:"column:folder_id;type:char(36);index:idx_note_folder" json:"folderId" form:"folderId"`
	Content      string     `gorm:"column:content;type:text" json:"content" form:"content"`
	CreatedAt    timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	LastChangeAt timex.Time `gorm:"column:last_change_at" json:"lastChangeAt" form:"lastChangeAt"`
	UpdatedAt    timex.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
