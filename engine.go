package ecs

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"time"
)

// Engine ties the EntityManager, the EventBus, Resources and the systems together
// and runs them frame by frame.
type Engine struct {
	registry  *ComponentTypeRegistry
	entities  *EntityManager
	events    *EventBus
	resources *Resources
	assets    AssetProvider
	stats     *TimingStats

	systems []System
}

type Option func(e *Engine)

// WithRegistry configures the component type registry used by the engine.
func WithRegistry(registry *ComponentTypeRegistry) Option {
	return func(e *Engine) {
		e.registry = registry
	}
}

// WithAssets configures the AssetProvider passed to the systems.
func WithAssets(assets AssetProvider) Option {
	return func(e *Engine) {
		e.assets = assets
	}
}

// WithTimingStats enables collecting timings of frames and systems.
func WithTimingStats() Option {
	return func(e *Engine) {
		e.stats = NewTimingStats()
	}
}

func NewEngine(options ...Option) *Engine {
	e := &Engine{
		events:    NewEventBus(),
		resources: NewResources(),
		assets:    MapAssets{},
	}

	for _, option := range options {
		option(e)
	}

	if e.registry == nil {
		e.registry = NewComponentTypeRegistry()
	}

	e.entities = NewEntityManager(e.registry)
	e.entities.SetSignatureListener(e.onSignatureChanged)

	return e
}

// AddSystem adds a system to the engine. Systems are updated in the order they
// were added. Live entities matching the system are added to it immediately, event
// subscriptions take effect at the next frame.
func (e *Engine) AddSystem(system System) {
	if !reflect.TypeOf(system).Comparable() {
		panic(fmt.Sprintf("system of type %T must be comparable, use a pointer", system))
	}

	if slices.Contains(e.systems, system) {
		panic(fmt.Sprintf("system %s was already added", SystemName(system)))
	}

	e.systems = append(e.systems, system)

	sig := system.Signature()
	for _, entityId := range e.entities.Entities() {
		if entitySig, _ := e.entities.Signature(entityId); sig.IsSubset(entitySig) {
			system.AddEntity(entityId)
		}
	}

	slog.Debug(
		"System added",
		slog.String("name", SystemName(system)),
		slog.String("signature", sig.String()),
	)
}

// RemoveSystem removes a system from the engine. Starting with the next frame it
// does not receive updates and its event subscriptions are dropped.
func (e *Engine) RemoveSystem(system System) {
	e.systems = slices.DeleteFunc(e.systems, func(other System) bool { return other == system })
}

// Update runs a single frame. Staged entities are flushed, event subscriptions are
// renewed and each system is updated once with the given delta.
func (e *Engine) Update(delta time.Duration) {
	if e.stats != nil {
		defer e.stats.MeasureFrame().Stop()
	}

	for _, entityId := range e.entities.PendingSpawn() {
		sig, _ := e.entities.Signature(entityId)

		for _, system := range e.systems {
			if system.Signature().IsSubset(sig) {
				system.AddEntity(entityId)
			}
		}
	}

	for _, entityId := range e.entities.PendingDespawn() {
		for _, system := range e.systems {
			system.RemoveEntity(entityId)
		}
	}

	e.entities.Update()

	e.subscribeEvents()

	ctx := &Context{
		Delta:     delta,
		Assets:    e.assets,
		Entities:  e.entities,
		Events:    e.events,
		Resources: e.resources,
	}

	// systems added or removed during the frame take effect with the next frame
	for _, system := range slices.Clone(e.systems) {
		e.updateSystem(system, ctx)
	}
}

func (e *Engine) updateSystem(system System, ctx *Context) {
	if e.stats != nil {
		defer e.stats.MeasureSystem(system).Stop()
	}

	system.Update(ctx)
}

func (e *Engine) subscribeEvents() {
	e.events.Clear()

	for _, system := range e.systems {
		listener, ok := system.(EventListener)
		if !ok {
			continue
		}

		for _, eventType := range listener.EventTypes() {
			e.events.Subscribe(eventType, listener)
		}
	}
}

func (e *Engine) onSignatureChanged(entityId EntityId, sig ComponentSignature) {
	for _, system := range e.systems {
		if system.Signature().IsSubset(sig) {
			system.AddEntity(entityId)
		} else {
			system.RemoveEntity(entityId)
		}
	}
}

// CreateEntity creates an entity that becomes visible in the next frame.
func (e *Engine) CreateEntity() EntityId {
	return e.entities.CreateEntity()
}

// Spawn creates an entity with the given components.
func (e *Engine) Spawn(components ...any) EntityId {
	entityId := e.entities.CreateEntity()
	e.entities.Insert(entityId, components...)
	return entityId
}

// DestroyEntity removes the entity at the start of the next frame.
func (e *Engine) DestroyEntity(entityId EntityId) {
	e.entities.DestroyEntity(entityId)
}

func (e *Engine) Entities() *EntityManager {
	return e.entities
}

func (e *Engine) Events() *EventBus {
	return e.events
}

func (e *Engine) Resources() *Resources {
	return e.resources
}

func (e *Engine) Assets() AssetProvider {
	return e.assets
}

func (e *Engine) Registry() *ComponentTypeRegistry {
	return e.registry
}

// Stats returns the collected timings, or nil if WithTimingStats was not used.
func (e *Engine) Stats() *TimingStats {
	return e.stats
}

// Systems returns the systems in update order.
func (e *Engine) Systems() []System {
	return slices.Clone(e.systems)
}

// InsertResource stores a copy of the value as a resource.
func (e *Engine) InsertResource(value any) {
	e.resources.Put(value)
}

// AddComponentTo adds a component to an entity managed by the engine.
func AddComponentTo[C any](e *Engine, entityId EntityId, value C) {
	AddComponent(e.entities, entityId, value)
}

// RemoveComponentFrom removes a component from an entity managed by the engine.
func RemoveComponentFrom[C any](e *Engine, entityId EntityId) {
	RemoveComponent[C](e.entities, entityId)
}

// SignatureFor builds the signature of the given component types.
func (e *Engine) SignatureFor(types ...reflect.Type) ComponentSignature {
	return e.registry.SignatureOf(types...)
}
