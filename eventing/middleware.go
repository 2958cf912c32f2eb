package eventing

import (
	"context"
	"time"

	"vivarium/logging"
)

// LoggingMiddleware 记录每个经过总线的事件
type LoggingMiddleware struct {
	logger logging.Logger
}

// NewLoggingMiddleware 创建日志中间件
func NewLoggingMiddleware(logger logging.Logger) *LoggingMiddleware {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &LoggingMiddleware{logger: logger}
}

// Handle 实现 IMiddleware 接口
func (m *LoggingMiddleware) Handle(ctx context.Context, evt IEvent, next NextFunc) error {
	start := time.Now()
	err := next(ctx, evt)

	fields := []logging.Field{
		logging.String("event_type", evt.GetType()),
		logging.String("event_id", evt.GetID()),
		logging.String("creature", evt.GetCreatureName()),
		logging.Duration("elapsed", time.Since(start)),
	}

	if err != nil {
		m.logger.Error(ctx, "event handling failed", append(fields, logging.Error(err))...)
		return err
	}

	m.logger.Debug(ctx, "event published", fields...)
	return nil
}

// Name 实现 IMiddleware 接口
func (m *LoggingMiddleware) Name() string {
	return "logging"
}
