// Package domain 定义领域模型和接口
package domain

import (
	"context"

	"github.com/google/uuid"
)

// FolderRepository 文件夹仓储接口
// Lookups return ErrNotFound when nothing matches. Writes take the caller uid to pick its write queue.
type FolderRepository interface {
	// GetByID 根据ID获取文件夹，不做归属过滤
	GetByID(ctx context.Context, id uuid.UUID) (*Folder, error)

	// ListByOwner 获取用户的全部文件夹
	ListByOwner(ctx context.Context, uid int64) ([]*Folder, error)

	// SearchByOwner 名称包含 keyword（字面子串）的用户文件夹
	SearchByOwner(ctx context.Context, uid int64, keyword string) ([]*Folder, error)

	// UpdateName 修改文件夹名称
	UpdateName(ctx context.Context, id uuid.UUID, name string, uid int64) error

	// Create 创建文件夹
	Create(ctx context.Context, folder *Folder, uid int64) (*Folder, error)
}

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// GetByID 根据ID获取笔记，不做归属过滤
	GetByID(ctx context.Context, id uuid.UUID) (*Note, error)

	// ListByFolder 获取文件夹内的笔记
	ListByFolder(ctx context.Context, folderID uuid.UUID) ([]*Note, error)

	// SearchByOwner 内容包含 keyword（字面子串）的用户笔记
	SearchByOwner(ctx context.Context, uid int64, keyword string) ([]*Note, error)

	// UpdateFolder 将笔记移动到文件夹
	UpdateFolder(ctx context.Context, id uuid.UUID, folderID uuid.UUID, uid int64) error

	// Create 创建笔记
	Create(ctx context.Context, note *Note, uid int64) (*Note, error)
}
