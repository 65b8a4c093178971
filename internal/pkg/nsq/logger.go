package nsq

import (
	"strings"

	"github.com/efkobus/antifraud-system/internal/pkg/logger"
)

// nsqLogger routes go-nsq's internal log lines into zap
type nsqLogger struct {
	logger *logger.ZapLogger
}

func newNSQLogger(l *logger.ZapLogger) *nsqLogger {
	return &nsqLogger{logger: l.Named("nsq")}
}

// Output satisfies the go-nsq logger interface. Lines arrive prefixed with
// their level, e.g. "WRN    1 [topic/channel] ...".
func (n *nsqLogger) Output(_ int, s string) error {
	switch {
	case strings.HasPrefix(s, "ERR"):
		n.logger.Error(s)
	case strings.HasPrefix(s, "WRN"):
		n.logger.Warn(s)
	default:
		n.logger.Debug(s)
	}
	return nil
}
