package main

import (
	"context"
	"log"

	"github.com/aidiary/internal/config"
	"github.com/aidiary/internal/db"
	"github.com/aidiary/internal/handler"
	"github.com/aidiary/internal/realtime"
	"github.com/aidiary/internal/router"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 变更推送中心：任何写入成功后通知订阅页面重新拉取
	hub := realtime.NewHub()
	go hub.Run(context.Background())

	api := handler.NewAPI(db.DB, cfg, hub)

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
