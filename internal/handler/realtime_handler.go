package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/aidiary/internal/realtime"
	"github.com/gin-gonic/gin"
)

// SubscribeChanges 将连接升级为 websocket 并订阅指定表的变更通知。
// 任何插入/更新/删除都会推送一条 {"table": ...}，订阅端收到后整表重新拉取。
func (a *API) SubscribeChanges(c *gin.Context) {
	table := strings.TrimSpace(c.Query("table"))
	if !realtime.ValidTable(table) {
		respondError(c, http.StatusBadRequest, "不支持订阅该表")
		return
	}

	if a.hub == nil {
		respondError(c, http.StatusServiceUnavailable, "变更通知暂不可用")
		return
	}

	if err := a.hub.Subscribe(c.Writer, c.Request, table); err != nil {
		log.Printf("websocket upgrade failed: %v", err)
	}
}
