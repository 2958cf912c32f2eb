package creature_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"vivarium/creature"
	"vivarium/eventing"
	"vivarium/logging"
	"vivarium/notify"
)

// applyOps 将操作序列施加到生物上（0=speak 1=walk 2=eat）
func applyOps(ctx context.Context, c creature.ICreature, ops []int) {
	for _, op := range ops {
		switch op {
		case 0:
			c.Speak(ctx)
		case 1:
			c.Walk(ctx)
		default:
			c.Eat(ctx)
		}
	}
}

// spawnObserved 构造一只接入独立总线的生物并返回其事件收集器
func spawnObserved(name string) (creature.ICreature, uuid.UUID, *eventSink) {
	bus := eventing.NewSyncBus()
	sink := &eventSink{}
	if _, err := bus.Subscribe(eventing.EventTypeAll, sink); err != nil {
		panic(err)
	}

	id := uuid.New()
	c := creature.New(name,
		creature.WithID(id),
		creature.WithNotifier(notify.Discard()),
		creature.WithEventBus(bus),
		creature.WithLogger(logging.NewNoopLogger()),
	)
	return c, id, sink
}

// streamShape 提取事件流的（类型，负载）序列用于比较
func streamShape(events []eventing.IEvent) []any {
	shape := make([]any, 0, len(events)*2)
	for _, evt := range events {
		shape = append(shape, evt.GetType(), evt.GetPayload())
	}
	return shape
}

// TestCreature_Properties 随机操作序列下的不变式
func TestCreature_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1337)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// 不变式：死亡是终态，died 事件之后不再有任何事件；年龄单调不减
	properties.Property("death is terminal and announced at most once", prop.ForAll(
		func(ops []int) bool {
			c, _, sink := spawnObserved("Prop")
			applyOps(context.Background(), c, ops)

			diedSeen := false
			prevAge := 0
			for _, evt := range sink.all() {
				if diedSeen {
					return false
				}

				switch evt.GetType() {
				case creature.EventDied:
					diedSeen = true
					record, ok := evt.GetPayload().(creature.DeathRecord)
					if !ok || record.Vitals.Alive {
						return false
					}
				default:
					vitals, ok := evt.GetPayload().(creature.Vitals)
					if !ok {
						return false
					}
					if vitals.Age < prevAge {
						return false
					}
					prevAge = vitals.Age
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 2)),
	))

	// 不变式：同一操作序列的结果与旁观者无关——与另一只生物在
	// 同一总线上交错运行，事件流与单独运行完全一致
	properties.Property("instances never affect each other", prop.ForAll(
		func(ops []int, noise []int) bool {
			ctx := context.Background()

			solo, soloID, soloSink := spawnObserved("Twin")
			applyOps(ctx, solo, ops)

			bus := eventing.NewSyncBus()
			sink := &eventSink{}
			if _, err := bus.Subscribe(eventing.EventTypeAll, sink); err != nil {
				panic(err)
			}

			id1, id2 := uuid.New(), uuid.New()
			logger := logging.NewNoopLogger()
			c1 := creature.New("Twin",
				creature.WithID(id1), creature.WithEventBus(bus), creature.WithLogger(logger))
			c2 := creature.New("Noisy",
				creature.WithID(id2), creature.WithEventBus(bus), creature.WithLogger(logger))

			for i := 0; i < len(ops) || i < len(noise); i++ {
				if i < len(ops) {
					applyOps(ctx, c1, ops[i:i+1])
				}
				if i < len(noise) {
					applyOps(ctx, c2, noise[i:i+1])
				}
			}

			want := streamShape(soloSink.ofCreature(soloID))
			got := streamShape(sink.ofCreature(id1))
			if len(want) != len(got) {
				return false
			}
			for i := range want {
				if want[i] != got[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 2)),
		gen.SliceOf(gen.IntRange(0, 2)),
	))

	properties.TestingRun(t)
}
