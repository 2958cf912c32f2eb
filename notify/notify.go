// Package notify 定义生物行为通知的抽象与常用实现
//
// 通知是公开操作产生的面向观察者的输出（控制台等价物）。
// 它是单向副作用：接收器不允许失败，也不会把失败传回调用方。
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"vivarium/logging"
)

// Kind 通知类别
type Kind string

const (
	// KindSpeaking 生物正在说话
	KindSpeaking Kind = "speaking"

	// KindWalking 生物正在散步
	KindWalking Kind = "walking"

	// KindDied 生物死亡
	KindDied Kind = "died"

	// KindRefused 死亡后的动作被拒绝
	KindRefused Kind = "refused"
)

// Notice 一条通知
type Notice struct {
	CreatureID uuid.UUID
	Name       string
	Kind       Kind
	Action     string // 仅 KindRefused 时为被拒绝的动作名
	Occurred   time.Time
}

// String 渲染为面向读者的文本
func (n Notice) String() string {
	switch n.Kind {
	case KindSpeaking:
		return n.Name + " is speaking."
	case KindWalking:
		return n.Name + " is walking."
	case KindDied:
		return n.Name + " died."
	case KindRefused:
		return fmt.Sprintf("%s cannot %s.", n.Name, n.Action)
	default:
		return n.Name
	}
}

// INotifier 通知接收器接口
type INotifier interface {
	// Notify 接收一条通知
	Notify(ctx context.Context, notice Notice)
}

// NotifierFunc 通知接收器函数适配器
type NotifierFunc func(ctx context.Context, notice Notice)

func (f NotifierFunc) Notify(ctx context.Context, notice Notice) { f(ctx, notice) }

// Discard 返回丢弃所有通知的接收器（未注入时的默认值）
func Discard() INotifier {
	return discard{}
}

type discard struct{}

func (discard) Notify(context.Context, Notice) {}

// Multi 将通知依次分发给多个接收器
func Multi(notifiers ...INotifier) INotifier {
	targets := make([]INotifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			targets = append(targets, n)
		}
	}
	return multi{targets: targets}
}

type multi struct {
	targets []INotifier
}

func (m multi) Notify(ctx context.Context, notice Notice) {
	for _, n := range m.targets {
		n.Notify(ctx, notice)
	}
}

// Writer 将通知逐行写入 io.Writer
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter 创建写入型接收器
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (wn *Writer) Notify(ctx context.Context, notice Notice) {
	wn.mu.Lock()
	defer wn.mu.Unlock()
	fmt.Fprintln(wn.w, notice.String())
}

// LogNotifier 将通知桥接到日志
type LogNotifier struct {
	logger logging.Logger
}

// NewLogNotifier 创建日志型接收器
func NewLogNotifier(logger logging.Logger) *LogNotifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, notice Notice) {
	l.logger.Info(ctx, notice.String(),
		logging.String("creature_id", notice.CreatureID.String()),
		logging.String("kind", string(notice.Kind)),
	)
}

// Recorder 记录收到的全部通知（用于测试）
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// NewRecorder 创建记录型接收器
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(ctx context.Context, notice Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

// Notices 返回已记录通知的副本
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last 返回最近一条通知
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Len 返回已记录的通知数量
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}
