package main

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"depenses/models"
)

// App holds the request handlers' dependencies; it is constructed once in
// main and owns no package-level state.
type App struct {
	db  *gorm.DB
	cfg Config
	log *slog.Logger
}

func NewApp(db *gorm.DB, cfg Config, log *slog.Logger) *App {
	return &App{db: db, cfg: cfg, log: log}
}

func (a *App) SetupRoutes(r *gin.Engine) {
	r.POST("/api/auth/login", a.loginHandler)
	r.POST("/api/auth/logout", a.logoutHandler)

	api := r.Group("/api")
	api.Use(a.authMiddleware())
	api.GET("/auth/me", a.meHandler)

	api.GET("/expenses", a.listExpensesHandler)
	api.POST("/expenses", a.createExpenseHandler)
	api.PUT("/expenses/:id", a.updateExpenseHandler)
	api.DELETE("/expenses/:id", a.deleteExpenseHandler)
	api.POST("/expenses/bulk-delete", a.bulkDeleteExpensesHandler)
	api.GET("/expenses/export", a.exportExpensesHandler)

	api.GET("/budgets", a.getBudgetHandler)
	api.POST("/budgets", a.upsertBudgetHandler)
	api.DELETE("/budgets", a.deleteBudgetHandler)

	api.POST("/receipts", a.uploadReceiptHandler)
	api.GET("/receipts", a.listReceiptsHandler)

	admin := api.Group("/admin")
	admin.Use(a.adminRequired())
	admin.GET("/users", a.listUsersHandler)
	admin.POST("/users", a.createUserHandler)
	admin.PATCH("/users/:id", a.updateUserHandler)
	admin.DELETE("/users/:id", a.deleteUserHandler)
}

// authMiddleware resolves the session from the HTTP-only cookie, or from a
// Bearer header for non-browser clients.
func (a *App) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(sessionCookie)
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = authHeader[7:]
			}
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
			c.Abort()
			return
		}
		userID, err := ParseToken(a.cfg.JWTSecret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid session"})
			c.Abort()
			return
		}
		var user models.User
		if err := a.db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not found"})
			c.Abort()
			return
		}
		c.Set("user", &user)
		c.Next()
	}
}

// adminRequired gates admin routes; authMiddleware must run first.
func (a *App) adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "admin rights required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func (a *App) loginHandler(c *gin.Context) {
	var req struct {
		EmailOrUsername string `json:"emailOrUsername" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	user, err := Authenticate(a.db, req.EmailOrUsername, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}
	tokenString, err := SignToken(a.cfg.JWTSecret, user)
	if err != nil {
		a.log.Error("sign token", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	c.SetCookie(sessionCookie, tokenString, int(tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "message": "login successful"})
}

func (a *App) logoutHandler(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

func (a *App) meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "user": currentUser(c)})
}
