package ecs

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	t.Run("single component", func(t *testing.T) {
		engine, player, enemy, static := buildSimpleWorld(t)

		query := NewQuery1[Ref[Position]](engine.Entities())
		require.Equal(t, 3, query.Count())
		require.Equal(t, []EntityId{player, enemy, static}, query.Entities())

		var positions []Position
		for pos := range query.Values() {
			positions = append(positions, pos.Get())
		}

		require.Equal(t, []Position{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}, positions)
	})

	t.Run("superset matching", func(t *testing.T) {
		engine, player, enemy, _ := buildSimpleWorld(t)

		query := NewQuery2[Mut[Position], Ref[Velocity]](engine.Entities())
		require.Equal(t, []EntityId{player, enemy}, query.Entities())

		for pos, vel := range query.Values() {
			pos.Get().X += vel.Get().X
			pos.Get().Y += vel.Get().Y
		}

		ref := MustGetComponent[Position](engine.Entities(), player)
		require.Equal(t, Position{X: 2, Y: 2}, ref.Get())
		ref.Release()

		ref = MustGetComponent[Position](engine.Entities(), enemy)
		require.Equal(t, Position{X: 3, Y: 3}, ref.Get())
		ref.Release()
	})

	t.Run("views are released after the loop body", func(t *testing.T) {
		engine, player, _, _ := buildSimpleWorld(t)

		var views []Mut[Position]
		for pos := range NewQuery1[Mut[Position]](engine.Entities()).Values() {
			views = append(views, pos)
		}

		for _, view := range views {
			require.True(t, view.IsReleased())
			require.Panics(t, func() { view.Get() })
		}

		// can borrow again
		pos := MustGetComponentMut[Position](engine.Entities(), player)
		pos.Release()
	})

	t.Run("break releases views", func(t *testing.T) {
		engine, player, _, _ := buildSimpleWorld(t)

		for range NewQuery1[Mut[Position]](engine.Entities()).Values() {
			break
		}

		pos := MustGetComponentMut[Position](engine.Entities(), player)
		pos.Release()
	})

	t.Run("two exclusive views of the same type panic", func(t *testing.T) {
		engine, player, _, _ := buildSimpleWorld(t)

		query := NewQuery2[Mut[Position], Mut[Position]](engine.Entities())

		func() {
			defer func() {
				err, _ := recover().(error)
				require.True(t, errors.Is(err, ErrBorrowConflict))
			}()

			for range query.Values() {
			}
		}()

		// the first view was released while the panic unwound
		pos := MustGetComponentMut[Position](engine.Entities(), player)
		pos.Release()
	})

	t.Run("shared views of the same type are fine", func(t *testing.T) {
		engine, _, _, _ := buildSimpleWorld(t)

		query := NewQuery2[Ref[Position], Ref[Position]](engine.Entities())
		for a, b := range query.Values() {
			require.Equal(t, a.Get(), b.Get())
		}
	})

	t.Run("restartable", func(t *testing.T) {
		engine, _, _, _ := buildSimpleWorld(t)

		query := NewQuery1[Ref[Velocity]](engine.Entities())

		first := slices.Collect(query.Values())
		second := slices.Collect(query.Values())
		require.Len(t, first, 2)
		require.Len(t, second, 2)
	})

	t.Run("staged entities are not visible", func(t *testing.T) {
		engine, _, _, _ := buildSimpleWorld(t)

		engine.Spawn(Position{})
		require.Equal(t, 3, NewQuery1[Ref[Position]](engine.Entities()).Count())
	})

	t.Run("get", func(t *testing.T) {
		engine, player, _, static := buildSimpleWorld(t)

		query := NewQuery2[Ref[Player], Mut[Velocity]](engine.Entities())

		_, vel, ok := query.Get(player)
		require.True(t, ok)
		vel.Set(Velocity{X: 7})
		vel.Release()

		_, _, ok = query.Get(static)
		require.False(t, ok)

		pos, ok := NewQuery1[Ref[Position]](engine.Entities()).Get(static)
		require.True(t, ok)
		require.Equal(t, static, pos.Entity())
		pos.Release()
	})

	t.Run("three components", func(t *testing.T) {
		engine, player, _, _ := buildSimpleWorld(t)

		query := NewQuery3[Ref[Player], Mut[Position], Ref[Velocity]](engine.Entities())

		var rows int
		for row := range query.Values() {
			rows += 1
			require.Equal(t, player, row.Entity)
			row.B.Get().X += row.C.Get().X
		}

		require.Equal(t, 1, rows)

		row, ok := query.Get(player)
		require.True(t, ok)
		require.Equal(t, 2.0, row.B.Get().X)
		row.A.Release()
		row.B.Release()
		row.C.Release()
	})
}

func BenchmarkQuery(b *testing.B) {
	engine := NewEngine()
	for range 1000 {
		engine.Spawn(Position{}, Velocity{X: 1})
	}

	engine.Update(0)

	query := NewQuery2[Mut[Position], Ref[Velocity]](engine.Entities())

	for b.Loop() {
		for pos, vel := range query.Values() {
			pos.Get().X += vel.Get().X
		}
	}
}
