// Package dto 定义接口请求与响应结构
package dto

// FolderSummary 文件夹摘要
type FolderSummary struct {
	ID   string `json:"id"`   // opaque folder id // 文件夹标识
	Text string `json:"text"` // folder name // 文件夹名称
	Time int64  `json:"time"` // creation time, unix millis // 创建时间（毫秒）
}

// FolderListResponse 文件夹列表响应
type FolderListResponse struct {
	Folders []*FolderSummary `json:"folders"`
}

// FolderNotesRequest 文件夹笔记列表请求参数
type FolderNotesRequest struct {
	FolderID string `json:"-" form:"-" binding:"required,notblank"`
}

// FolderRenameRequest 文件夹重命名请求参数
// Name is stored as given, empty names included.
type FolderRenameRequest struct {
	FolderID string `json:"-" form:"-" binding:"required,notblank"`
	Name     string `json:"name" form:"name"`
}
