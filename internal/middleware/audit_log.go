// Package middleware provides audit logging utilities.
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shipquote/rate-service/internal/domain/model"
	"github.com/shipquote/rate-service/internal/service"
)

// AuditLog records a shipment action for audit purposes.
// Use it for state-changing actions: label creation, shipment
// cancellation, box catalog updates.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}

	entry := auditEntry(c, actionType, message, fields)
	entry.Level = "info"

	// Store asynchronously to avoid blocking
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}

// AuditLogError records a failed shipment action for audit purposes.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}

	entry := auditEntry(c, actionType, message, fields)
	entry.Level = "error"
	entry.Error = err.Error()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}

func auditEntry(c *gin.Context, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
		Fields:     fields,
	}

	if tn, ok := fields["tracking_number"].(string); ok {
		entry.TrackingNumber = tn
	}
	if sc, ok := fields["service_code"].(string); ok {
		entry.ServiceCode = sc
	}
	if clientID, exists := c.Get("client_id"); exists {
		if id, ok := clientID.(string); ok && id != "" {
			entry.WithField("client_id", id)
		}
	}
	return entry
}
