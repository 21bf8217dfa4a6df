package ecs

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync/atomic"
)

// EntityId identifies an entity. It is a plain handle into the component
// storage of an EntityManager and carries no data by itself. Ids are never reused.
type EntityId uint32

// NoEntityId is never handed out by an EntityManager.
const NoEntityId = EntityId(0)

func (e EntityId) String() string {
	return strconv.Itoa(int(e))
}

func (e EntityId) LogValue() slog.Value {
	return slog.StringValue(e.String())
}

// entityIdSeq hands out monotonically increasing entity ids, starting at 1.
type entityIdSeq struct {
	last atomic.Uint32
}

func (s *entityIdSeq) next() EntityId {
	id := s.last.Add(1)
	if id == 0 || id == math.MaxUint32 {
		panic(fmt.Sprintf("entity id space exhausted after %d entities", uint32(math.MaxUint32)-1))
	}

	return EntityId(id)
}
