package ecs

import "log/slog"

// TagManager assigns unique names to entities. An entity has at most one tag
// and a tag belongs to at most one entity.
type TagManager struct {
	entityByTag map[string]EntityId
	tagByEntity map[EntityId]string

	// reports whether an entity can be tagged, nil accepts every entity
	exists func(EntityId) bool
}

func newTagManager(exists func(EntityId) bool) *TagManager {
	return &TagManager{
		entityByTag: map[string]EntityId{},
		tagByEntity: map[EntityId]string{},
		exists:      exists,
	}
}

// SetTag tags the entity. A previous tag of the entity is dropped. If the tag
// is currently held by another entity, it is taken away from that entity.
// Entities that do not exist are not tagged.
func (t *TagManager) SetTag(entityId EntityId, tag string) {
	if t.exists != nil && !t.exists(entityId) {
		slog.Warn("Cannot tag entity, it does not exist", slog.Any("entity", entityId), slog.String("tag", tag))
		return
	}

	t.RemoveTag(entityId)

	if previous, ok := t.entityByTag[tag]; ok {
		delete(t.tagByEntity, previous)
	}

	t.entityByTag[tag] = entityId
	t.tagByEntity[entityId] = tag
}

// RemoveTag removes the tag of the entity, if any.
func (t *TagManager) RemoveTag(entityId EntityId) {
	tag, ok := t.tagByEntity[entityId]
	if !ok {
		return
	}

	delete(t.tagByEntity, entityId)
	delete(t.entityByTag, tag)
}

// HasTag reports whether the entity currently holds the given tag.
func (t *TagManager) HasTag(entityId EntityId, tag string) bool {
	current, ok := t.tagByEntity[entityId]
	return ok && current == tag
}

// Tag returns the tag of the entity.
func (t *TagManager) Tag(entityId EntityId) (string, bool) {
	tag, ok := t.tagByEntity[entityId]
	return tag, ok
}

// EntityByTag returns the entity holding the tag.
func (t *TagManager) EntityByTag(tag string) (EntityId, bool) {
	entityId, ok := t.entityByTag[tag]
	return entityId, ok
}

// RemoveEntity drops the tag of a removed entity.
func (t *TagManager) RemoveEntity(entityId EntityId) {
	t.RemoveTag(entityId)
}
