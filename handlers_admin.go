package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"depenses/models"
)

func (a *App) listUsersHandler(c *gin.Context) {
	var users []models.User
	if err := a.db.Order("id").Find(&users).Error; err != nil {
		a.log.Error("list users", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

func (a *App) createUserHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Username string `json:"username" binding:"required"`
		FullName string `json:"fullName" binding:"required"`
		Password string `json:"password" binding:"required"`
		IsAdmin  bool   `json:"isAdmin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	user, err := CreateUser(a.db, req.Email, req.Username, req.FullName, req.Password, req.IsAdmin)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "message": "user created"})
}

// updateUserHandler toggles admin rights. Admins cannot demote themselves so
// the household always keeps at least one reachable admin.
func (a *App) updateUserHandler(c *gin.Context) {
	admin := currentUser(c)
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return
	}
	var req struct {
		IsAdmin *bool `json:"isAdmin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "isAdmin must be a boolean"})
		return
	}
	if admin.ID == id && !*req.IsAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "you cannot remove your own admin rights"})
		return
	}
	var user models.User
	if err := a.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
		return
	}
	user.IsAdmin = *req.IsAdmin
	if err := a.db.Save(&user).Error; err != nil {
		a.log.Error("update user", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "message": "user updated"})
}

func (a *App) deleteUserHandler(c *gin.Context) {
	admin := currentUser(c)
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return
	}
	if admin.ID == id {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "you cannot delete your own account"})
		return
	}
	var user models.User
	if err := a.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
		return
	}
	if err := a.db.Delete(&user).Error; err != nil {
		a.log.Error("delete user", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "user " + user.Username + " deleted"})
}
