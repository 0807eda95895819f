package router

import (
	"html/template"
	"net/http"
	"time"

	"github.com/aidiary/internal/config"
	"github.com/aidiary/internal/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("aidiary_session", store))

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"eq": func(a, b interface{}) bool {
			return a == b
		},
	})
	r.LoadHTMLGlob("web/template/*.html")

	// 静态文件服务
	r.Static("/static", "./web/static")

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 登录/注册无需认证
	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", api.Login)
	r.GET("/signup", api.ShowSignupPage)
	r.POST("/signup", api.Signup)

	// 推理转发接口沿用独立函数的访问方式：跨域放开，user_id 随请求体传入
	process := r.Group("/api/diary")
	process.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"POST", "OPTIONS"},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
		MaxAge:       12 * time.Hour,
	}))
	process.POST("/process", api.ProcessDiaryEntry)
	// 预检请求由 cors 中间件直接应答，这里只需让路由存在
	process.OPTIONS("/process", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// 需要认证的页面与 API
	auth := r.Group("")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/", api.ShowHome)
		auth.GET("/diary", api.ShowDiaryList)
		auth.GET("/calendar", api.ShowCalendarPage)
		auth.GET("/logout", api.Logout)

		apiGroup := auth.Group("/api")
		{
			apiGroup.GET("/diary", api.GetDiaryEntries)
			apiGroup.POST("/diary", api.CreateDiaryEntry)
			apiGroup.PUT("/diary/:id", api.UpdateDiaryEntry)
			apiGroup.DELETE("/diary/:id", api.DeleteDiaryEntry)

			apiGroup.GET("/calendar", api.GetCalendarEvents)
			apiGroup.POST("/calendar", api.CreateCalendarEvent)
			apiGroup.PUT("/calendar/:id", api.UpdateCalendarEvent)
			apiGroup.PUT("/calendar/:id/toggle", api.ToggleCalendarEvent)
			apiGroup.DELETE("/calendar/:id", api.DeleteCalendarEvent)

			apiGroup.GET("/stats/calendar", api.GetCalendarStats)
			apiGroup.GET("/stats/emotions", api.GetEmotionStats)

			apiGroup.GET("/changes", api.SubscribeChanges)
		}
	}

	return r
}
