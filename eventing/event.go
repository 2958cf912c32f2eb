// Package eventing 提供生命周期事件与同步事件总线
package eventing

import (
	"time"

	"github.com/google/uuid"
)

// IEvent 事件接口
type IEvent interface {
	// GetID 获取事件ID
	GetID() string

	// GetType 获取事件类型
	GetType() string

	// GetCreatureID 获取所属生物ID
	GetCreatureID() uuid.UUID

	// GetCreatureName 获取所属生物名称
	GetCreatureName() string

	// GetTimestamp 获取时间戳
	GetTimestamp() time.Time

	// GetPayload 获取事件数据
	GetPayload() any

	// GetMetadata 获取元数据
	GetMetadata() map[string]any
}

// Event 事件基础实现
type Event struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	CreatureID   uuid.UUID      `json:"creature_id"`
	CreatureName string         `json:"creature_name"`
	Timestamp    time.Time      `json:"timestamp"`
	Payload      any            `json:"payload,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// GetID 获取事件ID
func (e *Event) GetID() string {
	return e.ID
}

// GetType 获取事件类型
func (e *Event) GetType() string {
	return e.Type
}

// GetCreatureID 获取所属生物ID
func (e *Event) GetCreatureID() uuid.UUID {
	return e.CreatureID
}

// GetCreatureName 获取所属生物名称
func (e *Event) GetCreatureName() string {
	return e.CreatureName
}

// GetTimestamp 获取时间戳
func (e *Event) GetTimestamp() time.Time {
	return e.Timestamp
}

// GetPayload 获取事件数据
func (e *Event) GetPayload() any {
	return e.Payload
}

// GetMetadata 获取元数据
func (e *Event) GetMetadata() map[string]any {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	return e.Metadata
}

// SetMetadata 设置元数据
func (e *Event) SetMetadata(key string, value any) {
	if e.Metadata == nil {
		e.Metadata = make(map[string]any)
	}
	e.Metadata[key] = value
}

// NewEvent 创建事件，事件ID使用UUID
func NewEvent(eventType string, creatureID uuid.UUID, creatureName string, payload any) *Event {
	return &Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		CreatureID:   creatureID,
		CreatureName: creatureName,
		Timestamp:    time.Now(),
		Payload:      payload,
		Metadata:     make(map[string]any),
	}
}
