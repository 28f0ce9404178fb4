package domain

import "errors"

// ErrNotFound is returned by repositories when no row matches
// ErrNotFound 仓储层查询不到记录时返回
var ErrNotFound = errors.New("record not found")

// Owned is an entity that belongs to exactly one user
// Owned 归属于唯一用户的实体
type Owned interface {
	OwnerUID() int64
}

// Outcome 归属校验结果
type Outcome int

const (
	// OutcomeAbsent no entity with the identifier
	OutcomeAbsent Outcome = iota
	// OutcomeForbidden the entity exists but belongs to someone else
	OutcomeForbidden
	// OutcomeOwned the entity belongs to the caller
	OutcomeOwned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAbsent:
		return "absent"
	case OutcomeForbidden:
		return "forbidden"
	case OutcomeOwned:
		return "owned"
	}
	return "unknown"
}

// Resolution is the result of resolving an identifier against a caller.
// Entity is set only when Outcome is OutcomeOwned.
type Resolution[T Owned] struct {
	Outcome Outcome
	Entity  T
}

// Classify decides the outcome for an entity fetched by identifier.
// found=false means the lookup matched nothing.
func Classify[T Owned](entity T, found bool, callerUID int64) Resolution[T] {
	if !found {
		return Resolution[T]{Outcome: OutcomeAbsent}
	}
	if entity.OwnerUID() != callerUID {
		return Resolution[T]{Outcome: OutcomeForbidden}
	}
	return Resolution[T]{Outcome: OutcomeOwned, Entity: entity}
}
