// Package creature 实现封装的生物实例
//
// 每个实例独占自己的私有状态（age/weight/alive/name），外界只能
// 通过构造时绑定的三个公开操作（Speak/Walk/Eat）间接影响它。
// 具体类型不导出，私有状态与私有操作在包外不可达。
//
// 生命周期是两状态机：Alive -> Dead，Dead 为吸收态。任何阈值
// 越界或内部 die 都会触发迁移，之后所有公开操作只产生拒绝
// 通知，不再改变状态。
package creature

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vivarium/eventing"
	"vivarium/logging"
	"vivarium/notify"
)

// 构造默认值与生死阈值
const (
	// DefaultName 未命名生物的名称
	DefaultName = "Un-named"

	initialAge    = 0
	initialWeight = 20

	maxAge    = 30
	maxWeight = 80
	minWeight = 0
)

// ICreature 生物的公开接口
// 这是实例对外的全部能力面；三个操作都不会失败
type ICreature interface {
	// Speak 说话：存活时播报并变老一岁
	Speak(ctx context.Context)

	// Walk 散步：存活时播报、变老一岁并减重
	Walk(ctx context.Context)

	// Eat 进食：存活时增重，无播报
	Eat(ctx context.Context)
}

// creature 私有状态的唯一持有者
type creature struct {
	mu sync.Mutex

	id     uuid.UUID
	name   string
	age    int
	weight int
	alive  bool

	cause     DeathCause
	announced bool

	notifier notify.INotifier
	bus      eventing.IEventBus
	logger   logging.Logger
}

// New 构造一个生物实例并返回其公开接口
// name 为空白时使用 DefaultName；构造不会失败，
// 两次构造产生的实例互不共享任何状态
func New(name string, opts ...Option) ICreature {
	c := &creature{
		id:       uuid.New(),
		name:     normalizeName(name),
		age:      initialAge,
		weight:   initialWeight,
		alive:    true,
		notifier: notify.Discard(),
		logger:   logging.GetLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.publish(context.Background(), EventCreated, c.vitals())
	return c
}

// normalizeName 宽松规范化：非法输入替换为默认值而非拒绝
func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return name
}

// Speak 实现 ICreature 接口
func (c *creature) Speak(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.alive {
		c.refuse(ctx, "speak")
		return
	}

	c.notify(ctx, notify.KindSpeaking, "")
	c.growOld()
	c.publish(ctx, EventSpoke, c.vitals())
	c.announceDeath(ctx)
}

// Walk 实现 ICreature 接口
func (c *creature) Walk(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.alive {
		c.refuse(ctx, "walk")
		return
	}

	c.notify(ctx, notify.KindWalking, "")
	c.growOld()
	c.loseWeight()
	c.publish(ctx, EventWalked, c.vitals())
	c.announceDeath(ctx)
}

// Eat 实现 ICreature 接口
// 死亡分支同样不改变状态：Dead 是吸收态
func (c *creature) Eat(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.alive {
		c.refuse(ctx, "eat")
		return
	}

	c.gainWeight()
	c.publish(ctx, EventAte, c.vitals())
	c.announceDeath(ctx)
}

// growOld 年龄加一；达到 maxAge 触发死亡
func (c *creature) growOld() {
	if !c.alive {
		return
	}
	c.age++
	if c.age >= maxAge {
		c.die(DeathOldAge)
	}
}

// gainWeight 体重加一；达到 maxWeight 触发死亡
func (c *creature) gainWeight() {
	if !c.alive {
		return
	}
	c.weight++
	if c.weight >= maxWeight {
		c.die(DeathOverweight)
	}
}

// loseWeight 体重减一；降到 minWeight 触发死亡
func (c *creature) loseWeight() {
	if !c.alive {
		return
	}
	c.weight--
	if c.weight <= minWeight {
		c.die(DeathStarvation)
	}
}

// die 终态迁移，幂等：重复调用无进一步效果
func (c *creature) die(cause DeathCause) {
	if !c.alive {
		return
	}
	c.alive = false
	c.cause = cause
}

// refuse 死亡后的动作只产生拒绝通知，不改变状态
func (c *creature) refuse(ctx context.Context, action string) {
	c.notify(ctx, notify.KindRefused, action)
}

// announceDeath 本次操作导致死亡时，播报一次并发布 died 事件
func (c *creature) announceDeath(ctx context.Context) {
	if c.alive || c.announced {
		return
	}
	c.announced = true
	c.notify(ctx, notify.KindDied, "")
	c.publish(ctx, EventDied, DeathRecord{Cause: c.cause, Vitals: c.vitals()})
}

func (c *creature) vitals() Vitals {
	return Vitals{
		Age:    c.age,
		Weight: c.weight,
		Alive:  c.alive,
	}
}

func (c *creature) notify(ctx context.Context, kind notify.Kind, action string) {
	c.notifier.Notify(ctx, notify.Notice{
		CreatureID: c.id,
		Name:       c.name,
		Kind:       kind,
		Action:     action,
		Occurred:   time.Now(),
	})
}

// publish 发布生命周期事件；发布失败只记日志，公开操作保持全函数
func (c *creature) publish(ctx context.Context, eventType string, payload any) {
	if c.bus == nil {
		return
	}

	evt := eventing.NewEvent(eventType, c.id, c.name, payload)
	if err := c.bus.Publish(ctx, evt); err != nil {
		c.logger.Warn(ctx, "lifecycle event publish failed",
			logging.String("event_type", eventType),
			logging.String("creature", c.name),
			logging.Error(err),
		)
	}
}
