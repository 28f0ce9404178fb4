package model

import (
	"github.com/haierkeys/fast-note-folder-service/pkg/timex"

	"github.com/google/uuid"
)

const TableNameFolder = "folder"

// Folder mapped from table <folder>
type Folder struct {
	ID        uuid.UUID  `gorm:"column:id;type:char(36);primaryKey" json:"id" form:"id"`
	Name      string     `gorm:"column:name;not null;default:''" json:"name" form:"name"`
	OwnerID   int64      `gorm:"column:owner_id;not null;index:idx_folder_owner" json:"ownerId" form:"ownerId"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Folder's table name
func (*Folder) TableName() string {
	return TableNameFolder
}
