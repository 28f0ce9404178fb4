package service

import (
	"context"

	"github.com/haierkeys/fast-note-folder-service/internal/domain"
	"github.com/haierkeys/fast-note-folder-service/internal/dto"
	"github.com/haierkeys/fast-note-folder-service/pkg/code"
	"github.com/haierkeys/fast-note-folder-service/pkg/idcodec"
	"github.com/haierkeys/fast-note-folder-service/pkg/logger"
	"github.com/haierkeys/fast-note-folder-service/pkg/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FolderService 文件夹业务服务接口
// Every keyed operation decodes the opaque id, checks ownership against uid and only then reads or writes.
// Errors are *code.Code values: not-found, forbidden, unauthenticated or internal.
type FolderService interface {
	// ListNotes 列出文件夹内的笔记
	ListNotes(ctx context.Context, uid int64, encodedFolderID string) ([]*dto.NoteSummary, error)
	// Rename 重命名文件夹，名称不做校验
	Rename(ctx context.Context, uid int64, encodedFolderID string, newName string) error
	// MoveNote 将笔记移动到目标文件夹
	MoveNote(ctx context.Context, uid int64, encodedNoteID string, encodedFolderID string) error
	// SearchKeyword 在用户的笔记内容与文件夹名称中搜索关键字
	SearchKeyword(ctx context.Context, uid int64, keyword string) (*dto.SearchResult, error)
	// ListAllFolders 列出用户的全部文件夹
	ListAllFolders(ctx context.Context, uid int64) ([]*dto.FolderSummary, error)
}

type folderService struct {
	folderRepo domain.FolderRepository
	noteRepo   domain.NoteRepository
	codec      idcodec.Codec
	logger     *zap.Logger
	config     *ServiceConfig
}

// NewFolderService 创建文件夹服务
func NewFolderService(folderRepo domain.FolderRepository, noteRepo domain.NoteRepository, codec idcodec.Codec, lg *zap.Logger, cfg *ServiceConfig) FolderService {
	if lg == nil {
		lg = zap.NewNop()
	}
	if cfg == nil {
		cfg = &ServiceConfig{}
	}
	return &folderService{
		folderRepo: folderRepo,
		noteRepo:   noteRepo,
		codec:      codec,
		logger:     lg,
		config:     cfg,
	}
}

func (s *folderService) ListNotes(ctx context.Context, uid int64, encodedFolderID string) ([]*dto.NoteSummary, error) {
	const method = "FolderService.ListNotes"
	if uid <= 0 {
		return nil, code.ErrorNotUserAuthToken
	}

	folderID, err := s.decode(method, logger.FieldFolderID, encodedFolderID, uid)
	if err != nil {
		return nil, err
	}

	res, err := resolveOwned(ctx, s.folderRepo.GetByID, folderID, uid)
	if err != nil {
		s.logFailure(method, err, uid, zap.String(logger.FieldFolderID, encodedFolderID))
		return nil, code.ErrorDBQuery
	}
	if err := outcomeError(res.Outcome, code.ErrorFolderNotFound, code.ErrorFolderForbidden); err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListByFolder(ctx, res.Entity.ID)
	if err != nil {
		s.logFailure(method, err, uid, zap.String(logger.FieldFolderID, encodedFolderID))
		return nil, code.ErrorDBQuery
	}

	out := make([]*dto.NoteSummary, 0, len(notes))
	for _, n := range notes {
		out = append(out, s.noteSummary(n))
	}

	if s.config.Debug {
		s.logger.Info("read notes success",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldFolderID, encodedFolderID),
			zap.Int(logger.FieldCount, len(out)))
	}

	return out, nil
}

func (s *folderService) Rename(ctx context.Context, uid int64, encodedFolderID string, newName string) error {
	const method = "FolderService.Rename"
	if uid <= 0 {
		return code.ErrorNotUserAuthToken
	}

	folderID, err := s.decode(method, logger.FieldFolderID, encodedFolderID, uid)
	if err != nil {
		return err
	}

	res, err := resolveOwned(ctx, s.folderRepo.GetByID, folderID, uid)
	if err != nil {
		s.logFailure(method, err, uid, zap.String(logger.FieldFolderID, encodedFolderID))
		return code.ErrorDBQuery
	}
	if err := outcomeError(res.Outcome, code.ErrorFolderNotFound, code.ErrorFolderForbidden); err != nil {
		return err
	}

	if err := s.folderRepo.UpdateName(ctx, res.Entity.ID, newName, uid); err != nil {
		s.logFailure(method, err, uid, zap.String(logger.FieldFolderID, encodedFolderID))
		return code.ErrorDBQuery
	}
	return nil
}

// MoveNote checks the target folder first and the note second, each against the caller.
// The first failing check decides the outcome.
func (s *folderService) MoveNote(ctx context.Context, uid int64, encodedNoteID string, encodedFolderID string) error {
	const method = "FolderService.MoveNote"
	if uid <= 0 {
		return code.ErrorNotUserAuthToken
	}

	folderID, err := s.decode(method, logger.FieldFolderID, encodedFolderID, uid)
	if err != nil {
		return err
	}

	folderRes, err := resolveOwned(ctx, s.folderRepo.GetByID, folderID, uid)
	if err != nil {
		s.logFailure(method, err, uid, zap.String(logger.FieldFolderID, encodedFolderID))
		return code.ErrorDBQuery
	}
	if err := outcomeError(folderRes.Outcome, code.ErrorFolderNotFound, code.ErrorFolderForbidden); err != nil {
		return err
	}

	noteID, err := s.decode(method, logger.FieldNoteID, encodedNoteID, uid)
	if err != nil {
		return err
	}

	noteRes, err := resolveOwned(ctx, s.noteRepo.GetByID, noteID, uid)
	if err != nil {
		s.logFailure(method, err, uid, zap.String(logger.FieldNoteID, encodedNoteID))
		return code.ErrorDBQuery
	}
	if err := outcomeError(noteRes.Outcome, code.ErrorNoteNotFound, code.ErrorNoteForbidden); err != nil {
		return err
	}

	if err := s.noteRepo.UpdateFolder(ctx, noteRes.Entity.ID, folderRes.Entity.ID, uid); err != nil {
		s.logFailure(method, err, uid,
			zap.String(logger.FieldNoteID, encodedNoteID),
			zap.String(logger.FieldFolderID, encodedFolderID))
		return code.ErrorDBQuery
	}
	return nil
}

// SearchKeyword runs the note search, then the folder search. Any failure discards both lists.
func (s *folderService) SearchKeyword(ctx context.Context, uid int64, keyword string) (*dto.SearchResult, error) {
	const method = "FolderService.SearchKeyword"
	if uid <= 0 {
		return nil, code.ErrorNotUserAuthToken
	}

	notes, err := s.noteRepo.SearchByOwner(ctx, uid, keyword)
	if err != nil {
		s.logFailure(method, err, uid, zap.String(logger.FieldKeyword, keyword))
		return nil, code.ErrorDBQuery
	}

	folders, err := s.folderRepo.SearchByOwner(ctx, uid, keyword)
	if err != nil {
		s.logFailure(method, err, uid, zap.String(logger.FieldKeyword, keyword))
		return nil, code.ErrorDBQuery
	}

	result := &dto.SearchResult{
		Notes:   make([]*dto.NoteSummary, 0, len(notes)),
		Folders: make([]*dto.FolderSummary, 0, len(folders)),
	}
	for _, n := range notes {
		result.Notes = append(result.Notes, s.noteSummary(n))
	}
	for _, f := range folders {
		result.Folders = append(result.Folders, s.folderSummary(f))
	}
	return result, nil
}

// ListAllFolders answers an empty list with not-found unless EmptyFolderListSuccess is set.
// Each call runs its own query under its own ctx.
func (s *folderService) ListAllFolders(ctx context.Context, uid int64) ([]*dto.FolderSummary, error) {
	const method = "FolderService.ListAllFolders"
	if uid <= 0 {
		return nil, code.ErrorNotUserAuthToken
	}

	folders, err := s.folderRepo.ListByOwner(ctx, uid)
	if err != nil {
		s.logFailure(method, err, uid)
		return nil, code.ErrorDBQuery
	}

	if len(folders) == 0 && !s.config.EmptyFolderListSuccess {
		return nil, code.ErrorFolderNotFound
	}

	out := make([]*dto.FolderSummary, 0, len(folders))
	for _, f := range folders {
		out = append(out, s.folderSummary(f))
	}
	return out, nil
}

// decode turns an opaque id into a key. A malformed id is an internal error, not a not-found.
func (s *folderService) decode(method, field, encoded string, uid int64) (uuid.UUID, error) {
	id, err := s.codec.Decode(encoded)
	if err != nil {
		s.logFailure(method, err, uid, zap.String(field, encoded))
		return uuid.Nil, code.ErrorServerInternal
	}
	return id, nil
}

func (s *folderService) logFailure(method string, err error, uid int64, fields ...zap.Field) {
	s.logger.Error("folder service operation failed", append([]zap.Field{
		zap.String(logger.FieldMethod, method),
		zap.Int64(logger.FieldUID, uid),
		zap.Error(err),
	}, fields...)...)
}

func (s *folderService) noteSummary(n *domain.Note) *dto.NoteSummary {
	return &dto.NoteSummary{
		ID:   s.codec.Encode(n.ID),
		Text: n.Title,
		Time: n.DisplayTime().UnixMilli(),
		Tag:  util.ParseNoteTags(n.Content),
	}
}

func (s *folderService) folderSummary(f *domain.Folder) *dto.FolderSummary {
	return &dto.FolderSummary{
		ID:   s.codec.Encode(f.ID),
		Text: f.Name,
		Time: f.CreatedAt.UnixMilli(),
	}
}
