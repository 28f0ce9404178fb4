// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	// Debug logs successful reads at info level // 调试模式，记录读取成功日志
	Debug bool
	// EmptyFolderListSuccess answers an empty folder list with success instead of not-found
	// EmptyFolderListSuccess 文件夹列表为空时返回成功而不是不存在
	EmptyFolderListSuccess bool
}
