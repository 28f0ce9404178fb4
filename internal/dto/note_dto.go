package dto

// NoteSummary 笔记摘要
type NoteSummary struct {
	ID   string   `json:"id"`   // opaque note id // 笔记标识
	Text string   `json:"text"` // note title // 笔记标题
	Time int64    `json:"time"` // last change time, else creation time, unix millis // 最后修改时间，无则为创建时间
	Tag  []string `json:"tag"`  // tags parsed from content // 从内容解析的标签
}

// NoteListResponse 笔记列表响应
type NoteListResponse struct {
	Notes []*NoteSummary `json:"notes"`
}

// NoteMoveRequest 移动笔记请求参数
type NoteMoveRequest struct {
	NoteID   string `json:"-" form:"-" binding:"required,notblank"`
	FolderID string `json:"folderId" form:"folderId" binding:"required,notblank"`
}
