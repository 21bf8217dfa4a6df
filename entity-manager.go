package ecs

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/oliverbestmann/ecs/internal/set"
)

// SignatureListener is notified whenever the signature of a live entity changes
// because a component was added or removed.
type SignatureListener func(entity EntityId, signature ComponentSignature)

// EntityManager owns all entities and their components.
//
// Entities created with CreateEntity become visible after the next call to Update,
// entities destroyed with DestroyEntity are removed during the next call to Update.
// Components are added and removed immediately.
type EntityManager struct {
	registry *ComponentTypeRegistry
	ids      entityIdSeq

	components map[ComponentTypeId]map[EntityId]*cell
	signatures map[EntityId]ComponentSignature

	entities  set.Set[EntityId]
	toSpawn   set.Set[EntityId]
	toDespawn set.Set[EntityId]

	tags   *TagManager
	groups *GroupManager

	listener SignatureListener
}

// NewEntityManager creates an empty EntityManager using the given registry
// to assign component type ids. If registry is nil, a new registry is created.
func NewEntityManager(registry *ComponentTypeRegistry) *EntityManager {
	if registry == nil {
		registry = NewComponentTypeRegistry()
	}

	em := &EntityManager{
		registry:   registry,
		components: map[ComponentTypeId]map[EntityId]*cell{},
		signatures: map[EntityId]ComponentSignature{},
	}

	// staged entities can be tagged, they are cleaned up by the despawn flush
	em.tags = newTagManager(em.exists)
	em.groups = newGroupManager(em.exists)

	return em
}

func (em *EntityManager) Registry() *ComponentTypeRegistry {
	return em.registry
}

// Tags returns the tag manager of this EntityManager.
func (em *EntityManager) Tags() *TagManager {
	return em.tags
}

// Groups returns the group manager of this EntityManager.
func (em *EntityManager) Groups() *GroupManager {
	return em.groups
}

// SetSignatureListener installs the listener that is notified about signature
// changes of live entities. Only one listener can be installed at a time.
func (em *EntityManager) SetSignatureListener(listener SignatureListener) {
	em.listener = listener
}

// CreateEntity allocates a new entity id and stages it for spawning.
// The entity becomes visible after the next call to Update.
func (em *EntityManager) CreateEntity() EntityId {
	entityId := em.ids.next()

	em.signatures[entityId] = ComponentSignature{}
	em.toSpawn.Insert(entityId)

	return entityId
}

// DestroyEntity stages the entity for removal during the next call to Update.
// Destroying an entity multiple times before the flush is a no-op.
func (em *EntityManager) DestroyEntity(entityId EntityId) {
	if !em.exists(entityId) {
		slog.Warn("Cannot destroy entity, it does not exist", slog.Any("entity", entityId))
		return
	}

	em.toDespawn.Insert(entityId)
}

// IsAlive reports whether the entity was flushed and is visible to systems and queries.
func (em *EntityManager) IsAlive(entityId EntityId) bool {
	return em.entities.Has(entityId)
}

// exists reports whether the entity is alive or staged for spawning.
func (em *EntityManager) exists(entityId EntityId) bool {
	_, ok := em.signatures[entityId]
	return ok
}

// Entities returns all live entities in order of their spawn.
func (em *EntityManager) Entities() []EntityId {
	return em.entities.Slice()
}

// PendingSpawn returns the entities that will be spawned during the next Update.
func (em *EntityManager) PendingSpawn() []EntityId {
	return em.toSpawn.Slice()
}

// PendingDespawn returns the entities that will be removed during the next Update.
func (em *EntityManager) PendingDespawn() []EntityId {
	return em.toDespawn.Slice()
}

// IsPendingDespawn reports whether the entity is staged for removal.
func (em *EntityManager) IsPendingDespawn(entityId EntityId) bool {
	return em.toDespawn.Has(entityId)
}

// Signature returns the current signature of the entity.
func (em *EntityManager) Signature(entityId EntityId) (ComponentSignature, bool) {
	sig, ok := em.signatures[entityId]
	return sig, ok
}

// EntitiesWithSignature returns all live entities having at least
// the components in sig, in order of their spawn.
func (em *EntityManager) EntitiesWithSignature(sig ComponentSignature) []EntityId {
	var result []EntityId

	for entityId := range em.entities.Values() {
		if em.signatures[entityId].IsSuperset(sig) {
			result = append(result, entityId)
		}
	}

	return result
}

// Update flushes the staged spawns and then the staged despawns.
func (em *EntityManager) Update() {
	spawned := em.toSpawn.Drain()
	for _, entityId := range spawned {
		em.entities.Insert(entityId)
	}

	despawned := em.toDespawn.Drain()
	for _, entityId := range despawned {
		em.removeEntity(entityId)
	}

	if len(spawned) > 0 || len(despawned) > 0 {
		slog.Debug(
			"Entities flushed",
			slog.Int("spawned", len(spawned)),
			slog.Int("despawned", len(despawned)),
			slog.Int("alive", em.entities.Len()),
		)
	}
}

func (em *EntityManager) removeEntity(entityId EntityId) {
	sig := em.signatures[entityId]

	for _, typeId := range sig.Ids() {
		column := em.components[typeId]

		if c := column[entityId]; c != nil && c.borrowed() {
			panic(c.conflict(true))
		}

		delete(column, entityId)
	}

	delete(em.signatures, entityId)
	em.entities.Remove(entityId)

	em.tags.RemoveEntity(entityId)
	em.groups.RemoveEntity(entityId)
}

// Insert adds the given components to the entity, overwriting existing
// values of the same type. Bundles are flattened.
func (em *EntityManager) Insert(entityId EntityId, components ...any) {
	for _, component := range flattenComponents(nil, components...) {
		if component == nil {
			panic("can not insert a nil component")
		}

		ty := reflect.TypeOf(component)

		// store a copy of the value on the heap
		ptrToValue := reflect.New(ty)
		ptrToValue.Elem().Set(reflect.ValueOf(component))

		em.insertValue(ty, entityId, ptrToValue.Interface())
	}
}

// insertValue stores ptrToValue, a pointer to a value of type ty, as the
// component of the given entity.
func (em *EntityManager) insertValue(ty reflect.Type, entityId EntityId, ptrToValue any) {
	sig, ok := em.signatures[entityId]
	if !ok {
		slog.Warn(
			"Cannot add component, entity does not exist",
			slog.Any("entity", entityId),
			slog.String("component", ty.String()),
		)

		return
	}

	componentType := em.registry.typeOf(ty)

	column, ok := em.components[componentType.Id]
	if !ok {
		column = map[EntityId]*cell{}
		em.components[componentType.Id] = column
	}

	if existing, ok := column[entityId]; ok {
		existing.replace(ptrToValue)
		return
	}

	column[entityId] = newCell(componentType, entityId, ptrToValue)

	sig.Require(componentType.Id)
	em.updateSignature(entityId, sig)
}

func (em *EntityManager) removeValue(ty reflect.Type, entityId EntityId) {
	componentType, ok := em.registry.Lookup(ty)
	if !ok {
		return
	}

	column := em.components[componentType.Id]

	c, ok := column[entityId]
	if !ok {
		return
	}

	if c.borrowed() {
		panic(c.conflict(true))
	}

	delete(column, entityId)

	sig := em.signatures[entityId]
	sig.Remove(componentType.Id)
	em.updateSignature(entityId, sig)
}

func (em *EntityManager) updateSignature(entityId EntityId, sig ComponentSignature) {
	em.signatures[entityId] = sig

	// only live entities are pushed, staged ones get picked up by the spawn flush
	if em.listener != nil && em.entities.Has(entityId) {
		em.listener(entityId, sig)
	}
}

func (em *EntityManager) cellOf(ty reflect.Type, entityId EntityId) (*cell, bool) {
	componentType, ok := em.registry.Lookup(ty)
	if !ok {
		return nil, false
	}

	c, ok := em.components[componentType.Id][entityId]
	return c, ok
}

// AddComponent adds the component to the entity, overwriting any existing
// value of the same type.
func AddComponent[C any](em *EntityManager, entityId EntityId, value C) {
	em.insertValue(reflect.TypeFor[C](), entityId, &value)
}

// RemoveComponent removes the component of type C from the entity. It is a no-op if
// the entity does not have such a component.
func RemoveComponent[C any](em *EntityManager, entityId EntityId) {
	em.removeValue(reflect.TypeFor[C](), entityId)
}

// HasComponent reports whether the entity has a component of type C.
func HasComponent[C any](em *EntityManager, entityId EntityId) bool {
	_, ok := em.cellOf(reflect.TypeFor[C](), entityId)
	return ok
}

// GetComponent borrows the component of type C of the given entity for reading.
// The returned view must be released. Panics with a *BorrowError
// if the component is currently borrowed exclusively.
func GetComponent[C any](em *EntityManager, entityId EntityId) (Ref[C], bool) {
	c, ok := em.cellOf(reflect.TypeFor[C](), entityId)
	if !ok {
		return Ref[C]{}, false
	}

	return Ref[C]{}.acquire(c), true
}

// GetComponentMut borrows the component of type C of the given entity exclusively.
// The returned view must be released. Panics with a *BorrowError
// if any other view of the component is alive.
func GetComponentMut[C any](em *EntityManager, entityId EntityId) (Mut[C], bool) {
	c, ok := em.cellOf(reflect.TypeFor[C](), entityId)
	if !ok {
		return Mut[C]{}, false
	}

	return Mut[C]{}.acquire(c), true
}

// TryGetComponentMut is like GetComponentMut, but returns a borrow conflict
// as a *BorrowError instead of panicking.
func TryGetComponentMut[C any](em *EntityManager, entityId EntityId) (Mut[C], bool, error) {
	c, ok := em.cellOf(reflect.TypeFor[C](), entityId)
	if !ok {
		return Mut[C]{}, false, nil
	}

	value := castCell[C](c)
	if err := c.tryBorrowExclusive(); err != nil {
		return Mut[C]{}, true, err
	}

	return Mut[C]{token: &viewToken{cell: c, exclusive: true}, value: value}, true, nil
}

// MustGetComponent is like GetComponent but panics if the entity does not have
// a component of type C. Systems use it for their member entities.
func MustGetComponent[C any](em *EntityManager, entityId EntityId) Ref[C] {
	ref, ok := GetComponent[C](em, entityId)
	if !ok {
		panic(missingComponent[C](entityId))
	}

	return ref
}

// MustGetComponentMut is like GetComponentMut but panics if the entity does not have
// a component of type C.
func MustGetComponentMut[C any](em *EntityManager, entityId EntityId) Mut[C] {
	ref, ok := GetComponentMut[C](em, entityId)
	if !ok {
		panic(missingComponent[C](entityId))
	}

	return ref
}

func missingComponent[C any](entityId EntityId) string {
	return missingComponentOfType(reflect.TypeFor[C](), entityId)
}

func missingComponentOfType(ty reflect.Type, entityId EntityId) string {
	return fmt.Sprintf("entity %s does not have a component of type %s", entityId, ty)
}

// ComponentNames returns the type names of all components of the entity, ordered by type id.
func (em *EntityManager) ComponentNames(entityId EntityId) []string {
	sig := em.signatures[entityId]

	var names []string
	for _, id := range sig.Ids() {
		names = append(names, em.registry.Name(id))
	}

	return slices.Clip(names)
}
