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

type noteRepository struct {
	*Dao
}

// NewNoteRepository 创建笔记仓储
func NewNoteRepository(d *Dao) domain.NoteRepository {
	return &noteRepository{Dao: d}
}

func (r *noteRepository) note(ctx context.Context) (*gorm.DB, error) {
	if err := r.migrate("Note"); err != nil {
		return nil, err
	}
	return r.DB(ctx).Model(&model.Note{}), nil
}

func (r *noteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	q, err := r.note(ctx)
	if err != nil {
		return nil, err
	}
	var m model.Note
	if err := q.Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.modelToDomain(&m), nil
}

func (r *noteRepository) ListByFolder(ctx context.Context, folderID uuid.UUID) ([]*domain.Note, error) {
	q, err := r.note(ctx)
	if err != nil {
		return nil, err
	}
	var ms []*model.Note
	if err := q.Where("folder_id = ?", folderID).Order("created_at").Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.modelsToDomain(ms), nil
}

func (r *noteRepository) SearchByOwner(ctx context.Context, uid int64, keyword string) ([]*domain.Note, error) {
	q, err := r.note(ctx)
	if err != nil {
		return nil, err
	}
	var ms []*model.Note
	err = q.Where("owner_id = ? AND content LIKE ? ESCAPE '"+likeEscape+"'", uid, containsPattern(keyword)).
		Order("created_at").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.modelsToDomain(ms), nil
}

// UpdateFolder only touches folder_id, the note's last change time is about content and stays as is
func (r *noteRepository) UpdateFolder(ctx context.Context, id uuid.UUID, folderID uuid.UUID, uid int64) error {
	if err := r.migrate("Note"); err != nil {
		return err
	}
	return r.ExecuteWrite(ctx, uid, func(db *gorm.DB) error {
		return db.Model(&model.Note{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"folder_id":  folderID,
				"updated_at": timex.Now(),
			}).Error
	})
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note, uid int64) (*domain.Note, error) {
	if err := r.migrate("Note"); err != nil {
		return nil, err
	}
	m := r.domainToModel(note)
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

func (r *noteRepository) modelsToDomain(ms []*model.Note) []*domain.Note {
	res := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		res = append(res, r.modelToDomain(m))
	}
	return res
}

func (r *noteRepository) modelToDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	n := &domain.Note{
		ID:        m.ID,
		Title:     m.Title,
		OwnerID:   m.OwnerID,
		FolderID:  m.FolderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Std(),
		UpdatedAt: m.UpdatedAt.Std(),
	}
	if !m.LastChangeAt.IsZero() {
		t := m.LastChangeAt.Std()
		n.LastChangeAt = &t
	}
	return n
}

func (r *noteRepository) domainToModel(d *domain.Note) *model.Note {
	if d == nil {
		return nil
	}
	m := &model.Note{
		ID:        d.ID,
		Title:     d.Title,
		OwnerID:   d.OwnerID,
		FolderID:  d.FolderID,
		Content:   d.Content,
		CreatedAt: timex.Time(d.CreatedAt),
		UpdatedAt: timex.Time(d.UpdatedAt),
	}
	if d.LastChangeAt != nil {
		m.LastChangeAt = timex.Time(*d.LastChangeAt)
	}
	return m
}
