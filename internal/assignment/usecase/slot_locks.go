package usecase

import (
	"fmt"
	"slices"

	"github.com/im7mortal/kmutex"

	assignmentDomain "github.com/allisson/vetdesk/internal/assignment/domain"
)

// SlotLocks serializes in-process writers of the same (farm, role) slot. Every use case that
// writes slots of one database must share a single instance.
type SlotLocks struct {
	km *kmutex.Kmutex
}

// NewSlotLocks creates an empty lock table.
func NewSlotLocks() *SlotLocks {
	return &SlotLocks{km: kmutex.New()}
}

// Lock acquires the slots of farmID for roles in assignmentDomain.Roles order and returns
// the function that releases them.
func (l *SlotLocks) Lock(farmID string, roles ...assignmentDomain.Role) func() {
	ordered := slices.Clone(roles)
	slices.SortFunc(ordered, func(a, b assignmentDomain.Role) int {
		return slices.Index(assignmentDomain.Roles, a) - slices.Index(assignmentDomain.Roles, b)
	})
	ordered = slices.Compact(ordered)

	keys := make([]string, 0, len(ordered))
	for _, role := range ordered {
		key := fmt.Sprintf("%s/%s", farmID, role)
		l.km.Lock(key)
		keys = append(keys, key)
	}

	return func() {
		for i := len(keys) - 1; i >= 0; i-- {
			l.km.Unlock(keys[i])
		}
	}
}
