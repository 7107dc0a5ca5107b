package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogEntry represents a request or audit log document.
// Use the Fields map for any additional context-specific data.
type LogEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Level      string             `bson:"level" json:"level"`
	Message    string             `bson:"message" json:"message"`
	RequestID  string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string             `bson:"method,omitempty" json:"method,omitempty"`
	Path       string             `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64              `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string             `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	// Audit fields for shipment action tracking
	ActionType     string                 `bson:"action_type,omitempty" json:"action_type,omitempty"` // e.g., "rate_quote", "create_label", "cancel_shipment"
	Carrier        string                 `bson:"carrier,omitempty" json:"carrier,omitempty"`
	ServiceCode    string                 `bson:"service_code,omitempty" json:"service_code,omitempty"`
	TrackingNumber string                 `bson:"tracking_number,omitempty" json:"tracking_number,omitempty"`
	Fields         map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField adds a field to the log entry's Fields map.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// LogQueryOptions provides options for querying logs.
type LogQueryOptions struct {
	RequestID      string
	Level          string
	ActionType     string
	TrackingNumber string
	StartTime      *time.Time
	EndTime        *time.Time
	Limit          int
	Skip           int
}
