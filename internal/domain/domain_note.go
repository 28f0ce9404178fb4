package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note 笔记领域模型
type Note struct {
	ID      uuid.UUID
	Title   string
	OwnerID int64
	// FolderID is nil while the note sits outside any folder
	// FolderID 为 nil 表示笔记不属于任何文件夹
	FolderID *uuid.UUID
	// Content raw markdown, tags are parsed from it
	Content      string
	CreatedAt    time.Time
	LastChangeAt *time.Time
	UpdatedAt    time.Time
}

// OwnerUID implements Owned
func (n *Note) OwnerUID() int64 {
	return n.OwnerID
}

// DisplayTime is the last change time when recorded, otherwise the creation time
// DisplayTime 有最后修改时间时返回修改时间，否则返回创建时间
func (n *Note) DisplayTime() time.Time {
	if n.LastChangeAt != nil && !n.LastChangeAt.IsZero() {
		return *n.LastChangeAt
	}
	return n.CreatedAt
}
