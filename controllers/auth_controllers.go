package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-billing/middlewares"
	"github.com/yeremiapane/restaurant-billing/models"
	"github.com/yeremiapane/restaurant-billing/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Login -> return JWT berisi role (admin / cashier)
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("please enter both username and password"))
		return
	}

	var user models.User
	if err := ac.DB.WithContext(c.Request.Context()).
		Where("username = ?", strings.TrimSpace(input.Username)).
		First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Username, user.Role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  user.Role,
	})
}

// Logout -> token dimasukkan blacklist sampai kadaluarsa
func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetString(middlewares.ContextToken)
	expiry := c.GetTime(middlewares.ContextTokenExpiry)
	if expiry.IsZero() {
		expiry = time.Now().Add(24 * time.Hour)
	}
	utils.BlacklistToken(token, expiry)

	utils.InfoLogger.Printf("Logout: %s", c.GetString(middlewares.ContextUsername))
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}
