package health

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/textora/core/internal/modules/ai"
	"gorm.io/gorm"
)

var processStart = time.Now()

// RegisterRoutes mounts the readiness probe. The probe degrades to 503
// when the database is unreachable; an ML service outage is reported but
// does not fail the probe, since the API keeps serving auth and history.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, client *ai.Client, env, version string) {
	rg.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		dbOK := err == nil && sqlDB.Ping() == nil
		mlOK := client.Healthy(c.Request.Context())

		status := "ok"
		code := http.StatusOK
		if !dbOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":      status,
			"uptime":      humanizeUptime(time.Since(processStart)),
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": env,
			"version":     version,
			"database":    dbOK,
			"mlService":   mlOK,
		})
	})
}

func humanizeUptime(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, int(d.Seconds())%60)
}
