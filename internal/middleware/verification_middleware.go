package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/rakhadenny/scangate/internal/verification"
)

func VerificationMiddleware(svc *verification.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("verification_service", svc)
		c.Next()
	}
}

func GetVerificationService(c *gin.Context) *verification.Service {
	svc, exists := c.Get("verification_service")
	if !exists {
		return nil
	}
	return svc.(*verification.Service)
}
