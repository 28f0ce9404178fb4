package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldFolderID 文件夹标识字段
	FieldFolderID = "folderId"

	// FieldNoteID 笔记标识字段
	FieldNoteID = "noteId"

	// FieldKeyword 搜索关键字字段
	FieldKeyword = "keyword"

	// FieldCount 结果数量字段
	FieldCount = "count"

	// FieldDuration 耗时字段
	FieldDuration = "duration"
)
