package dto

// SearchRequest 关键字搜索请求参数
type SearchRequest struct {
	Keyword string `json:"keyword" form:"keyword" binding:"maxrunes=255"`
}

// SearchResult holds the caller's notes matching by content and folders matching by name
// SearchResult 搜索结果：内容匹配的笔记与名称匹配的文件夹
type SearchResult struct {
	Notes   []*NoteSummary   `json:"notes"`
	Folders []*FolderSummary `json:"folders"`
}
