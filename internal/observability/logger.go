package observability

import (
	"strings"

	"go.uber.org/zap"
)

// NewLogger builds a production logger for LOG_MODE "prod" or "production"
// and a development logger otherwise.
func NewLogger(mode string) (*zap.Logger, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}
