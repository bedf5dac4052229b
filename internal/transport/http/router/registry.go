package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule 挂载到 /api/v1 的功能模块
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂），不实现则默认 100
type prioritizer interface{ Priority() int }

// MountAllAPI 按优先级挂载
func MountAllAPI(api *gin.RouterGroup, mods ...APIModule) {
	mods = append([]APIModule(nil), mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(api)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
