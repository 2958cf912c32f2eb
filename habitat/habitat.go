// Package habitat 管理一群生物实例
//
// 栖息地为每只生物分配UUID并登记，通过订阅生命周期事件
// 跟踪住户的生死，提供普查能力。各住户的私有状态彼此独立，
// 栖息地本身也无法越过公开接口读写它们。
package habitat

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"vivarium/creature"
	"vivarium/eventing"
	"vivarium/logging"
	"vivarium/notify"
)

// Census 栖息地普查结果
type Census struct {
	Total int `json:"total"`
	Alive int `json:"alive"`
	Dead  int `json:"dead"`
}

// resident 栖息地中的一名住户
type resident struct {
	creature creature.ICreature
	name     string
	alive    bool
}

// Habitat 生物注册表
type Habitat struct {
	mu        sync.RWMutex
	residents map[uuid.UUID]*resident

	bus      eventing.IEventBus
	ownsBus  bool
	notifier notify.INotifier
	logger   logging.Logger
	subs     []*eventing.Subscription
}

// Option 构造期配置
type Option func(*Habitat)

// WithBus 使用外部事件总线（缺省时自建同步总线）
func WithBus(bus eventing.IEventBus) Option {
	return func(h *Habitat) {
		h.bus = bus
	}
}

// WithNotifier 为所有住户注入通知接收器
func WithNotifier(n notify.INotifier) Option {
	return func(h *Habitat) {
		if n != nil {
			h.notifier = n
		}
	}
}

// WithLogger 注入日志
func WithLogger(logger logging.Logger) Option {
	return func(h *Habitat) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New 创建栖息地
func New(opts ...Option) (*Habitat, error) {
	h := &Habitat{
		residents: make(map[uuid.UUID]*resident),
		notifier:  notify.Discard(),
		logger:    logging.GetLogger(),
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.bus == nil {
		h.bus = eventing.NewSyncBus()
		h.ownsBus = true
	}

	for eventType, handler := range map[string]eventing.HandlerFunc{
		creature.EventCreated: h.onCreated,
		creature.EventDied:    h.onDied,
	} {
		sub, err := h.bus.Subscribe(eventType, handler)
		if err != nil {
			return nil, err
		}
		h.subs = append(h.subs, sub)
	}

	return h, nil
}

// Spawn 孵化一只新生物并登记
// 生物在构造期间发布 created 事件，登记先由事件处理器完成，
// 这里只补上接口引用
func (h *Habitat) Spawn(ctx context.Context, name string) (uuid.UUID, creature.ICreature) {
	id := uuid.New()
	c := creature.New(name,
		creature.WithID(id),
		creature.WithNotifier(h.notifier),
		creature.WithEventBus(h.bus),
		creature.WithLogger(h.logger),
	)

	h.mu.Lock()
	r, ok := h.residents[id]
	if !ok {
		// created 事件未送达（例如外部总线已关闭）时的兜底登记
		r = &resident{name: name, alive: true}
		h.residents[id] = r
	}
	r.creature = c
	registered := r.name
	h.mu.Unlock()

	h.logger.Info(ctx, "creature spawned",
		logging.String("creature_id", id.String()),
		logging.String("name", registered),
	)
	return id, c
}

// Get 按ID查找住户
func (h *Habitat) Get(id uuid.UUID) (creature.ICreature, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	r, ok := h.residents[id]
	if !ok || r.creature == nil {
		return nil, false
	}
	return r.creature, true
}

// Names 返回全部住户名称（已排序）
func (h *Habitat) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.residents))
	for _, r := range h.residents {
		names = append(names, r.name)
	}
	sort.Strings(names)
	return names
}

// Census 统计住户生死
func (h *Habitat) Census() Census {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c := Census{Total: len(h.residents)}
	for _, r := range h.residents {
		if r.alive {
			c.Alive++
		} else {
			c.Dead++
		}
	}
	return c
}

// Bus 返回栖息地使用的事件总线
func (h *Habitat) Bus() eventing.IEventBus {
	return h.bus
}

// Close 取消订阅；自建的总线一并关闭
func (h *Habitat) Close() error {
	var errs []error
	for _, sub := range h.subs {
		if err := sub.Cancel(); err != nil {
			errs = append(errs, err)
		}
	}
	h.subs = nil

	if h.ownsBus {
		if err := h.bus.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// onCreated 登记新住户（取规范化后的名称）
func (h *Habitat) onCreated(ctx context.Context, evt eventing.IEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if r, ok := h.residents[evt.GetCreatureID()]; ok {
		r.name = evt.GetCreatureName()
		return nil
	}
	h.residents[evt.GetCreatureID()] = &resident{
		name:  evt.GetCreatureName(),
		alive: true,
	}
	return nil
}

// onDied 住户死亡时更新普查状态
func (h *Habitat) onDied(ctx context.Context, evt eventing.IEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if r, ok := h.residents[evt.GetCreatureID()]; ok {
		r.alive = false
	}
	return nil
}
