package ecs

import (
	"log/slog"

	"github.com/oliverbestmann/ecs/internal/set"
)

// GroupManager keeps track of named groups of entities. An entity can be part
// of any number of groups.
type GroupManager struct {
	entitiesByGroup map[string]*set.Set[EntityId]
	groupsByEntity  map[EntityId]*set.Set[string]

	// reports whether an entity can join a group, nil accepts every entity
	exists func(EntityId) bool
}

func newGroupManager(exists func(EntityId) bool) *GroupManager {
	return &GroupManager{
		entitiesByGroup: map[string]*set.Set[EntityId]{},
		groupsByEntity:  map[EntityId]*set.Set[string]{},
		exists:          exists,
	}
}

// AddToGroup adds the entity to the group. Adding an entity twice is a no-op,
// entities that do not exist are not added.
func (g *GroupManager) AddToGroup(entityId EntityId, group string) {
	if g.exists != nil && !g.exists(entityId) {
		slog.Warn("Cannot add entity to group, it does not exist", slog.Any("entity", entityId), slog.String("group", group))
		return
	}

	entities, ok := g.entitiesByGroup[group]
	if !ok {
		entities = &set.Set[EntityId]{}
		g.entitiesByGroup[group] = entities
	}

	groups, ok := g.groupsByEntity[entityId]
	if !ok {
		groups = &set.Set[string]{}
		g.groupsByEntity[entityId] = groups
	}

	entities.Insert(entityId)
	groups.Insert(group)
}

// RemoveFromGroup removes the entity from the group.
func (g *GroupManager) RemoveFromGroup(entityId EntityId, group string) {
	if entities, ok := g.entitiesByGroup[group]; ok {
		entities.Remove(entityId)

		if entities.Len() == 0 {
			delete(g.entitiesByGroup, group)
		}
	}

	if groups, ok := g.groupsByEntity[entityId]; ok {
		groups.Remove(group)

		if groups.Len() == 0 {
			delete(g.groupsByEntity, entityId)
		}
	}
}

// InGroup reports whether the entity is part of the group.
func (g *GroupManager) InGroup(entityId EntityId, group string) bool {
	groups, ok := g.groupsByEntity[entityId]
	return ok && groups.Has(group)
}

// GroupContains is InGroup with the arguments flipped.
func (g *GroupManager) GroupContains(group string, entityId EntityId) bool {
	return g.InGroup(entityId, group)
}

// EntitiesInGroup returns the members of the group in the order they were added.
func (g *GroupManager) EntitiesInGroup(group string) []EntityId {
	entities, ok := g.entitiesByGroup[group]
	if !ok {
		return nil
	}

	return entities.Slice()
}

// GroupsOf returns the groups of the entity in the order it joined them.
func (g *GroupManager) GroupsOf(entityId EntityId) []string {
	groups, ok := g.groupsByEntity[entityId]
	if !ok {
		return nil
	}

	return groups.Slice()
}

// RemoveEntity removes the entity from all of its groups.
func (g *GroupManager) RemoveEntity(entityId EntityId) {
	for _, group := range g.GroupsOf(entityId) {
		g.RemoveFromGroup(entityId, group)
	}
}
