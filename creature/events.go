package creature

// 生命周期事件类型
const (
	EventCreated = "creature.created"
	EventSpoke   = "creature.spoke"
	EventWalked  = "creature.walked"
	EventAte     = "creature.ate"
	EventDied    = "creature.died"
)

// DeathCause 死亡原因
type DeathCause string

const (
	// DeathOldAge 年龄达到上限
	DeathOldAge DeathCause = "old_age"

	// DeathOverweight 体重达到上限
	DeathOverweight DeathCause = "overweight"

	// DeathStarvation 体重降至下限
	DeathStarvation DeathCause = "starvation"
)

// Vitals 操作完成后的生命体征快照
// 作为 created/spoke/walked/ate 事件的负载，是外界观察
// 内部状态的唯一通道
type Vitals struct {
	Age    int  `json:"age"`
	Weight int  `json:"weight"`
	Alive  bool `json:"alive"`
}

// DeathRecord creature.died 事件的负载
type DeathRecord struct {
	Cause  DeathCause `json:"cause"`
	Vitals Vitals     `json:"vitals"`
}
