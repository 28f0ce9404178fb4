package domain

import (
	"time"

	"github.com/google/uuid"
)

// Folder 文件夹领域模型
type Folder struct {
	ID        uuid.UUID
	Name      string
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerUID implements Owned
func (f *Folder) OwnerUID() int64 {
	return f.OwnerID
}
