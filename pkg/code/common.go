package code

import "net/http"

var (
	Success = NewSuss(1, lang{zh_cn: "成功", en: "Success"})
	Failed  = NewError(0, http.StatusOK, lang{zh_cn: "失败", en: "Failed"})

	ErrorServerInternal  = NewError(500, http.StatusInternalServerError, lang{zh_cn: "服务器内部错误", en: "Internal server error"})
	ErrorNotFoundAPI     = NewError(404, http.StatusNotFound, lang{zh_cn: "找不到API", en: "API not found"})
	ErrorTooManyRequests = NewError(429, http.StatusTooManyRequests, lang{zh_cn: "请求过多", en: "Too many requests"})

	ErrorInvalidParams        = NewError(400, http.StatusBadRequest, lang{zh_cn: "参数验证失败", en: "Invalid parameters"})
	ErrorNotUserAuthToken     = NewError(401, http.StatusUnauthorized, lang{zh_cn: "尚未登录，请先登录", en: "Not logged in, please login first"})
	ErrorInvalidUserAuthToken = NewError(402, http.StatusUnauthorized, lang{zh_cn: "登录状态已失效，请重新登录", en: "Session expired, please login again"})

	ErrorDBQuery = NewError(5001, http.StatusInternalServerError, lang{zh_cn: "数据库查询失败", en: "Database query failed"})

	ErrorFolderNotFound  = NewError(6001, http.StatusNotFound, lang{zh_cn: "文件夹不存在", en: "Folder not found"})
	ErrorFolderForbidden = NewError(6002, http.StatusForbidden, lang{zh_cn: "无权访问该文件夹", en: "No permission to access this folder"})
	ErrorNoteNotFound    = NewError(6003, http.StatusNotFound, lang{zh_cn: "笔记不存在", en: "Note not found"})
	ErrorNoteForbidden   = NewError(6004, http.StatusForbidden, lang{zh_cn: "无权访问该笔记", en: "No permission to access this note"})
)
