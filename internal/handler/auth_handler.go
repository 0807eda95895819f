package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aidiary/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionUserIDKey = "user_id"

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "登录",
	})
}

// Login 处理用户登录请求
func (a *API) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	// 查找用户
	var user db.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"title": "登录", "error": "用户名或密码错误"})
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"title": "登录", "error": "用户名或密码错误"})
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"title": "登录", "error": "会话保存失败"})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// ShowSignupPage 渲染注册页面
func (a *API) ShowSignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"title": "注册",
	})
}

// Signup 处理用户注册请求，成功后直接登录
func (a *API) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || strings.TrimSpace(password) == "" {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"title": "注册", "error": "用户名和密码不能为空"})
		return
	}

	var existing db.User
	err := a.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"title": "注册", "error": "用户名已被占用"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{"title": "注册", "error": msgRetryLater})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{"title": "注册", "error": msgRetryLater})
		return
	}

	user := db.User{Username: username, Password: string(hashed)}
	if err := a.db.Create(&user).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{"title": "注册", "error": msgRetryLater})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}

// AuthRequired 是一个简单的认证中间件
// 页面请求重定向到登录页，API 请求返回 401 JSON
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(sessionUserIDKey)
		if userID == nil {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				respondError(c, http.StatusUnauthorized, "请先登录")
			} else {
				c.Redirect(http.StatusFound, "/login")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUserID 从会话中取出当前用户 ID，未登录时返回 0。
func currentUserID(c *gin.Context) uint {
	session := sessions.Default(c)
	value := session.Get(sessionUserIDKey)
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}
