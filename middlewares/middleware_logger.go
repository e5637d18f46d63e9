package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-billing/utils"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" && c.Query("token") == "" {
			path = path + "?" + raw
		}

		entry := utils.InfoLogger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"status":  status,
			"latency": latency,
			"user":    c.GetString(ContextUsername),
		})
		entry.Info(path)
	}
}

// BillLoggerMiddleware mencatat hasil pembuatan bill
func BillLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Generating bill (operator=%s)", c.GetString(ContextUsername))

		c.Next()

		if c.Writer.Status() < 300 {
			utils.InfoLogger.Printf("Bill generated successfully (status=%d)", c.Writer.Status())
		} else {
			utils.ErrorLogger.Warnf("Bill generation failed (status=%d)", c.Writer.Status())
		}
	}
}
