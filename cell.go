package ecs

// cell owns a single component value and tracks its borrows.
//
// state is the number of live shared borrows, or -1 while an exclusive borrow
// is alive. Cells are not safe for concurrent use.
type cell struct {
	componentType *ComponentType
	entity        EntityId

	// always a pointer to the component value, e.g. *Position
	value any

	state int
}

func newCell(componentType *ComponentType, entity EntityId, value any) *cell {
	return &cell{
		componentType: componentType,
		entity:        entity,
		value:         value,
	}
}

func (c *cell) conflict(exclusive bool) *BorrowError {
	return &BorrowError{
		Entity:    c.entity,
		Component: c.componentType.Name,
		Exclusive: exclusive,
		Readers:   c.state,
	}
}

func (c *cell) tryBorrowShared() error {
	if c.state < 0 {
		return c.conflict(false)
	}

	c.state += 1
	return nil
}

func (c *cell) tryBorrowExclusive() error {
	if c.state != 0 {
		return c.conflict(true)
	}

	c.state = -1
	return nil
}

func (c *cell) borrowShared() {
	if err := c.tryBorrowShared(); err != nil {
		panic(err)
	}
}

func (c *cell) borrowExclusive() {
	if err := c.tryBorrowExclusive(); err != nil {
		panic(err)
	}
}

func (c *cell) release(exclusive bool) {
	switch {
	case exclusive && c.state == -1:
		c.state = 0

	case !exclusive && c.state > 0:
		c.state -= 1

	default:
		panic("borrow state of component cell is out of sync")
	}
}

// replace overwrites the value of the cell. It requires the cell to be unborrowed.
func (c *cell) replace(value any) {
	if c.state != 0 {
		panic(c.conflict(true))
	}

	c.value = value
}

func (c *cell) borrowed() bool {
	return c.state != 0
}
