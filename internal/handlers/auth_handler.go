package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rakhadenny/scangate/internal/helpers"
	"github.com/rakhadenny/scangate/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a scanner device operator and issues a session token
// signed with the configured secret. Scanner accounts themselves are
// provisioned by the staff subsystem.
func Login(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}

		db, exists := c.Get("db")
		if !exists {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
			return
		}
		gormDB := db.(*gorm.DB)

		var scanner models.Scanner
		if err := gormDB.Where("email = ?", req.Email).First(&scanner).Error; err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(scanner.Password), []byte(req.Password)); err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
			return
		}

		if !scanner.IsActive {
			helpers.RespondWithError(c, http.StatusForbidden, "Scanner account is deactivated.")
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"scanner_id": scanner.ID,
			"exp":        time.Now().Add(12 * time.Hour).Unix(),
		})

		tokenString, err := token.SignedString([]byte(secret))
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": tokenString,
			"scanner": gin.H{
				"id":           scanner.ID,
				"name":         scanner.Name,
				"email":        scanner.Email,
				"can_override": scanner.CanOverrideScans,
			},
		})
	}
}
