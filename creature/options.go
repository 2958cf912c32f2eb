package creature

import (
	"github.com/google/uuid"

	"vivarium/eventing"
	"vivarium/logging"
	"vivarium/notify"
)

// Option 构造期配置
type Option func(*creature)

// WithID 指定实例ID（缺省为随机UUID）
func WithID(id uuid.UUID) Option {
	return func(c *creature) {
		if id != uuid.Nil {
			c.id = id
		}
	}
}

// WithNotifier 注入通知接收器
func WithNotifier(n notify.INotifier) Option {
	return func(c *creature) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithEventBus 注入生命周期事件总线
func WithEventBus(bus eventing.IEventBus) Option {
	return func(c *creature) {
		c.bus = bus
	}
}

// WithLogger 注入日志
func WithLogger(logger logging.Logger) Option {
	return func(c *creature) {
		if logger != nil {
			c.logger = logger
		}
	}
}
