package ecs

import (
	"reflect"
	"time"

	"github.com/oliverbestmann/ecs/internal/set"
)

// System processes all entities whose signature contains the signature of the system.
// Membership is maintained by the Engine through AddEntity and RemoveEntity.
type System interface {
	Signature() ComponentSignature
	AddEntity(entityId EntityId)
	RemoveEntity(entityId EntityId)
	Update(ctx *Context)
}

// EventListener is implemented by systems that want to receive events.
// The Engine subscribes the listener for all EventTypes at the start of every frame.
type EventListener interface {
	EventTypes() []EventType
	OnEvent(em *EntityManager, event Event)
}

// Context is passed to System.Update once per frame.
type Context struct {
	Delta     time.Duration
	Assets    AssetProvider
	Entities  *EntityManager
	Events    *EventBus
	Resources *Resources
}

// DeltaSecs returns Delta in seconds.
func (c *Context) DeltaSecs() float64 {
	return c.Delta.Seconds()
}

// BaseSystem implements the membership part of the System interface.
// Embed it into a struct and add an Update method.
type BaseSystem struct {
	signature ComponentSignature
	members   set.Set[EntityId]
}

func NewBaseSystem(signature ComponentSignature) BaseSystem {
	return BaseSystem{signature: signature}
}

func (s *BaseSystem) Signature() ComponentSignature {
	return s.signature
}

func (s *BaseSystem) AddEntity(entityId EntityId) {
	s.members.Insert(entityId)
}

func (s *BaseSystem) RemoveEntity(entityId EntityId) {
	s.members.Remove(entityId)
}

// Entities returns a snapshot of the member entities in order of their addition.
func (s *BaseSystem) Entities() []EntityId {
	return s.members.Slice()
}

func (s *BaseSystem) HasEntity(entityId EntityId) bool {
	return s.members.Has(entityId)
}

func (s *BaseSystem) EntityCount() int {
	return s.members.Len()
}

type UpdateFunc func(system *FuncSystem, ctx *Context)

type EventFunc func(system *FuncSystem, em *EntityManager, event Event)

// FuncSystem is a System built from plain functions.
//
//	ecs.NewSystem("gravity", sig).WithUpdate(func(s *ecs.FuncSystem, ctx *ecs.Context) { ... })
type FuncSystem struct {
	BaseSystem

	name       string
	update     UpdateFunc
	onEvent    EventFunc
	eventTypes []EventType
}

func NewSystem(name string, signature ComponentSignature) *FuncSystem {
	return &FuncSystem{
		BaseSystem: NewBaseSystem(signature),
		name:       name,
	}
}

func (s *FuncSystem) WithUpdate(update UpdateFunc) *FuncSystem {
	s.update = update
	return s
}

// WithEvents subscribes the system to the given event types.
func (s *FuncSystem) WithEvents(onEvent EventFunc, eventTypes ...EventType) *FuncSystem {
	s.onEvent = onEvent
	s.eventTypes = append(s.eventTypes, eventTypes...)
	return s
}

func (s *FuncSystem) Name() string {
	return s.name
}

func (s *FuncSystem) Update(ctx *Context) {
	if s.update != nil {
		s.update(s, ctx)
	}
}

func (s *FuncSystem) EventTypes() []EventType {
	return s.eventTypes
}

func (s *FuncSystem) OnEvent(em *EntityManager, event Event) {
	if s.onEvent != nil {
		s.onEvent(s, em, event)
	}
}

// SystemName returns the name of a system for logging. Systems can provide
// their own name by implementing a Name method.
func SystemName(system System) string {
	if named, ok := system.(interface{ Name() string }); ok {
		return named.Name()
	}

	return reflect.TypeOf(system).String()
}
