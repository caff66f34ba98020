package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Field keys shared across packages.
const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
	FieldSession  = "session_id"
	FieldStage    = "stage"
)

// pairs turns alternating keys and values into string fields. Blank values are skipped.
func pairs(kv ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, value := strings.TrimSpace(kv[i]), strings.TrimSpace(kv[i+1])
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, zap.String(key, value))
	}
	return fields
}

func with(logger *zap.Logger, fields []zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithCommonFields tags a text generation client logger with its provider and model.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return with(logger, pairs(FieldProvider, provider, FieldModel, model))
}

// WithSession tags every entry of the returned logger with the intake session id.
func WithSession(logger *zap.Logger, sessionID string) *zap.Logger {
	return with(logger, pairs(FieldSession, sessionID))
}

// Stage is the field for the intake stage a log entry belongs to.
func Stage(stage string) zap.Field {
	return zap.String(FieldStage, stage)
}
