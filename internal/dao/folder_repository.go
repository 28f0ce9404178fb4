package dao

import (
	"context"
	"errors"

	"github.com/haierkeys/fast-note-folder-service/internal/domain"
	"github.com/haierkeys/fast-note-folder-service/internal/model"
	"github.com/haierkeys/fast-note-folder-service/pkg/timex"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type folderRepository struct {
	*Dao
}

// NewFolderRepository 创建文件夹仓储
func NewFolderRepository(d *Dao) domain.FolderRepository {
	return &folderRepository{Dao: d}
}

// folder returns a query scoped to the folder table, migrating it on first use
func (r *folderRepository) folder(ctx context.Context) (*gorm.DB, error) {
	if err := r.migrate("Folder"); err != nil {
		return nil, err
	}
	return r.DB(ctx).Model(&model.Folder{}), nil
}

func (r *folderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Folder, error) {
	q, err := r.folder(ctx)
	if err != nil {
		return nil, err
	}
	var m model.Folder
	if err := q.Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.modelToDomain(&m), nil
}

func (r *folderRepository) ListByOwner(ctx context.Context, uid int64) ([]*domain.Folder, error) {
	q, err := r.folder(ctx)
	if err != nil {
		return nil, err
	}
	var ms []*model.Folder
	if err := q.Where("owner_id = ?", uid).Order("created_at").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.modelsToDomain(ms), nil
}

func (r *folderRepository) SearchByOwner(ctx context.Context, uid int64, keyword string) ([]*domain.Folder, error) {
	q, err := r.folder(ctx)
	if err != nil {
		return nil, err
	}
	var ms []*model.Folder
	err = q.Where("owner_id = ? AND name LIKE ? ESCAPE '"+likeEscape+"'", uid, containsPattern(keyword)).
		Order("created_at").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.modelsToDomain(ms), nil
}

func (r *folderRepository) UpdateName(ctx context.Context, id uuid.UUID, name string, uid int64) error {
	if err := r.migrate("Folder"); err != nil {
		return err
	}
	return r.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Model(&model.Folder{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"name":       name,
				"updated_at": timex.Now(),
			}).Error
	})
}

func (r *folderRepository) Create(ctx context.Context, folder *domain.Folder, uid int64) (*domain.Folder, error) {
	if err := r.migrate("Folder"); err != nil {
		return nil, err
	}
	m := r.domainToModel(folder)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.OwnerID == 0 {
		m.OwnerID = uid
	}
	now := timex.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	err := r.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Create(m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.modelToDomain(m), nil
}

func (r *folderRepository) modelsToDomain(ms []*model.Folder) []*domain.Folder {
	res := make([]*domain.Folder, 0, len(ms))
	for _, m := range ms {
		res = append(res, r.modelToDomain(m))
	}
	return res
}

func (r *folderRepository) modelToDomain(m *model.Folder) *domain.Folder {
	if m == nil {
		return nil
	}
	return &domain.Folder{
		ID:        m.ID,
		Name:      m.Name,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt.Std(),
		UpdatedAt: m.UpdatedAt.Std(),
	}
}

func (r *folderRepository) domainToModel(d *domain.Folder) *model.Folder {
	if d == nil {
		return nil
	}
	return &model.Folder{
		ID:        d.ID,
		Name:      d.Name,
		OwnerID:   d.OwnerID,
		CreatedAt: timex.Time(d.CreatedAt),
		UpdatedAt: timex.Time(d.UpdatedAt),
	}
}
