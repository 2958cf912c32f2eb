// Package eventing 的总线部分：同步分发，发布方 goroutine 内执行全部处理器
package eventing

import (
	"context"
	stdErrors "errors"
	"sync"

	"vivarium/errors"
)

// EventTypeAll 通配符：订阅所有事件类型
const EventTypeAll = "*"

// IEventHandler 事件处理器接口
type IEventHandler interface {
	// Handle 处理事件
	Handle(ctx context.Context, evt IEvent) error
}

// HandlerFunc 事件处理器函数适配器
type HandlerFunc func(ctx context.Context, evt IEvent) error

func (f HandlerFunc) Handle(ctx context.Context, evt IEvent) error {
	return f(ctx, evt)
}

// NextFunc 中间件链中的下一跳
type NextFunc func(ctx context.Context, evt IEvent) error

// IMiddleware 发布中间件接口
type IMiddleware interface {
	Handle(ctx context.Context, evt IEvent, next NextFunc) error
	Name() string
}

// IEventBus 事件总线接口
type IEventBus interface {
	// Subscribe 订阅事件类型，返回可取消的订阅句柄
	Subscribe(eventType string, handler IEventHandler) (*Subscription, error)

	// Publish 发布单个事件
	Publish(ctx context.Context, evt IEvent) error

	// PublishAll 依次发布多个事件
	PublishAll(ctx context.Context, events []IEvent) error

	// Use 注册发布中间件
	Use(middleware IMiddleware)

	// Close 关闭总线，之后的订阅与发布都会失败
	Close() error
}

// Subscription 一次订阅的句柄
type Subscription struct {
	id        uint64
	eventType string
	bus       *SyncBus
}

// Cancel 取消订阅；重复取消返回 NOT_FOUND 错误
func (s *Subscription) Cancel() error {
	return s.bus.unsubscribe(s.eventType, s.id)
}

type subscriber struct {
	id      uint64
	handler IEventHandler
}

// SyncBus 同步事件总线
// Publish 立即在调用方 goroutine 中执行所有匹配的处理器，
// 包括通配符订阅；处理器错误聚合后返回
type SyncBus struct {
	mu          sync.RWMutex
	subscribers map[string][]subscriber
	middlewares []IMiddleware
	nextID      uint64
	closed      bool
}

// NewSyncBus 创建同步事件总线
func NewSyncBus() *SyncBus {
	return &SyncBus{
		subscribers: make(map[string][]subscriber),
		middlewares: make([]IMiddleware, 0),
	}
}

// Use 注册发布中间件
func (b *SyncBus) Use(middleware IMiddleware) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.middlewares = append(b.middlewares, middleware)
}

// Subscribe 订阅事件类型
func (b *SyncBus) Subscribe(eventType string, handler IEventHandler) (*Subscription, error) {
	if handler == nil {
		return nil, errors.New(errors.ErrCodeSubscription, "handler must not be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, errors.New(errors.ErrCodeBusClosed, "event bus is closed")
	}

	b.nextID++
	b.subscribers[eventType] = append(b.subscribers[eventType], subscriber{
		id:      b.nextID,
		handler: handler,
	})

	return &Subscription{id: b.nextID, eventType: eventType, bus: b}, nil
}

func (b *SyncBus) unsubscribe(eventType string, id uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
			return nil
		}
	}
	return errors.Newf(errors.ErrCodeNotFound, "no subscription %d for event type %s", id, eventType)
}

// Publish 发布单个事件
func (b *SyncBus) Publish(ctx context.Context, evt IEvent) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return errors.New(errors.ErrCodeBusClosed, "event bus is closed")
	}

	handlers := make([]IEventHandler, 0)
	for _, s := range b.subscribers[evt.GetType()] {
		handlers = append(handlers, s.handler)
	}
	if evt.GetType() != EventTypeAll {
		for _, s := range b.subscribers[EventTypeAll] {
			handlers = append(handlers, s.handler)
		}
	}
	middlewares := b.middlewares
	b.mu.RUnlock()

	dispatch := func(ctx context.Context, evt IEvent) error {
		var errs []error
		for _, h := range handlers {
			if err := h.Handle(ctx, evt); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			joined := stdErrors.Join(errs...)
			return errors.Wrap(joined, errors.ErrCodePublish,
				"event handling completed with errors")
		}
		return nil
	}

	return executeMiddlewares(ctx, evt, middlewares, dispatch)
}

// PublishAll 依次发布多个事件，遇到第一个错误即停止
func (b *SyncBus) PublishAll(ctx context.Context, events []IEvent) error {
	for _, evt := range events {
		if err := b.Publish(ctx, evt); err != nil {
			return errors.Wrap(err, errors.ErrCodePublish,
				"failed to publish event "+evt.GetID())
		}
	}
	return nil
}

// Close 关闭总线
func (b *SyncBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errors.New(errors.ErrCodeBusClosed, "event bus is already closed")
	}
	b.closed = true
	return nil
}

// executeMiddlewares 构建并执行中间件链
func executeMiddlewares(ctx context.Context, evt IEvent, middlewares []IMiddleware, final NextFunc) error {
	if len(middlewares) == 0 {
		return final(ctx, evt)
	}

	next := final
	for i := len(middlewares) - 1; i >= 0; i-- {
		middleware := middlewares[i]
		currentNext := next
		next = func(ctx context.Context, e IEvent) error {
			return middleware.Handle(ctx, e, currentNext)
		}
	}
	return next(ctx, evt)
}
