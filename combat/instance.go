package combat

import "github.com/yohamta/donburi"

// InstanceKey files spawned entities by the facing they were spawned for and
// the symbolic instance tag of the action that spawned them.
type InstanceKey struct {
	Facing Facing
	Tag    string
}

// InstanceMap collects the entities spawned during one attack execution.
// Handles are weak: they must be checked with world.Valid before use.
type InstanceMap map[InstanceKey][]donburi.Entity

func (m InstanceMap) Push(key InstanceKey, e donburi.Entity) {
	m[key] = append(m[key], e)
}

// DeferredBatch carries the movement attacks of one execution until the
// deferred phase applies them against the execution's instance map.
type DeferredBatch struct {
	ID        uint64
	Fighter   FighterID
	Actions   []MoveAttack
	Instances InstanceMap
}

// BatchQueue holds pending deferred batches. Every batch is handed out by
// Drain exactly once and never requeued.
type BatchQueue struct {
	lastID  uint64
	pending []*DeferredBatch
}

func NewBatchQueue() *BatchQueue {
	return &BatchQueue{}
}

// Enqueue registers a batch under a fresh, monotonically increasing id.
func (q *BatchQueue) Enqueue(fighter FighterID, actions []MoveAttack, instances InstanceMap) *DeferredBatch {
	q.lastID++
	b := &DeferredBatch{
		ID:        q.lastID,
		Fighter:   fighter,
		Actions:   actions,
		Instances: instances,
	}
	q.pending = append(q.pending, b)
	return b
}

// Drain removes and returns every pending batch in enqueue order.
func (q *BatchQueue) Drain() []*DeferredBatch {
	out := q.pending
	q.pending = nil
	return out
}

func (q *BatchQueue) Len() int {
	return len(q.pending)
}

// LastID is the id handed to the most recent batch.
func (q *BatchQueue) LastID() uint64 {
	return q.lastID
}
