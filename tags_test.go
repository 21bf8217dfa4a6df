package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagManager(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tags := newTagManager(nil)

		tags.SetTag(1, "player")

		entityId, ok := tags.EntityByTag("player")
		require.True(t, ok)
		require.Equal(t, EntityId(1), entityId)
		require.True(t, tags.HasTag(1, "player"))

		tags.RemoveTag(1)

		_, ok = tags.EntityByTag("player")
		require.False(t, ok)
		require.False(t, tags.HasTag(1, "player"))
	})

	t.Run("retagging drops the old tag", func(t *testing.T) {
		tags := newTagManager(nil)

		tags.SetTag(1, "player")
		tags.SetTag(1, "boss")

		_, ok := tags.EntityByTag("player")
		require.False(t, ok)

		tag, _ := tags.Tag(1)
		require.Equal(t, "boss", tag)
	})

	t.Run("tag is stolen", func(t *testing.T) {
		tags := newTagManager(nil)

		tags.SetTag(1, "player")
		tags.SetTag(2, "player")

		entityId, _ := tags.EntityByTag("player")
		require.Equal(t, EntityId(2), entityId)

		_, ok := tags.Tag(1)
		require.False(t, ok)
	})
}

func TestGroupManager(t *testing.T) {
	groups := newGroupManager(nil)

	groups.AddToGroup(1, "enemies")
	groups.AddToGroup(2, "enemies")
	groups.AddToGroup(2, "enemies")
	groups.AddToGroup(2, "flying")

	require.Equal(t, []EntityId{1, 2}, groups.EntitiesInGroup("enemies"))
	require.True(t, groups.InGroup(2, "flying"))
	require.True(t, groups.GroupContains("flying", 2))
	require.False(t, groups.InGroup(1, "flying"))
	require.Equal(t, []string{"enemies", "flying"}, groups.GroupsOf(2))

	groups.RemoveFromGroup(1, "enemies")
	require.Equal(t, []EntityId{2}, groups.EntitiesInGroup("enemies"))

	groups.RemoveEntity(2)
	require.Empty(t, groups.EntitiesInGroup("enemies"))
	require.Empty(t, groups.EntitiesInGroup("flying"))
	require.Empty(t, groups.GroupsOf(2))
}
