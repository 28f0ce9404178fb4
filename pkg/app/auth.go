package app

import (
	"github.com/gin-gonic/gin"
)

// AuthContext is the read-only view of who is calling
// AuthContext 当前调用者的只读视图
type AuthContext interface {
	IsAuthenticated() bool
	UID() int64
}

type ginAuthContext struct {
	uid int64
}

// NewAuthContext builds the AuthContext from the token the user auth middleware stored
// NewAuthContext 从用户认证中间件写入的 token 构建 AuthContext
func NewAuthContext(c *gin.Context) AuthContext {
	return ginAuthContext{uid: GetUID(c)}
}

func (a ginAuthContext) IsAuthenticated() bool {
	return a.uid > 0
}

func (a ginAuthContext) UID() int64 {
	return a.uid
}
