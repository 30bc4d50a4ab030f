package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and timestamps. Marketing records embed it
// directly.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch sets UpdatedAt to now
func (e *BaseEntity) Touch() { e.UpdatedAt = time.Now() }

// BaseAggregateRoot adds a version that starts at 1 and grows with each
// mutation. It is persisted but not used for optimistic locking.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// IncrementVersion bumps Version and UpdatedAt together
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
	a.Touch()
}
