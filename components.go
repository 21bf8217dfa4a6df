package ecs

// Bundle groups multiple components into one value that can be passed to
// EntityManager.Insert or Engine.Spawn. Bundles can be nested.
func Bundle(components ...any) any {
	return bundle{Components: components}
}

type bundle struct {
	Components []any
}

func flattenComponents(target []any, components ...any) []any {
	for _, component := range components {
		if b, ok := component.(bundle); ok {
			// recurse into the bundle and flatten its components
			target = flattenComponents(target, b.Components...)
		} else {
			target = append(target, component)
		}
	}

	return target
}
