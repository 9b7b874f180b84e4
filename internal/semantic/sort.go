package semantic

import "yal/internal/ast"

// definition is a type-introducing statement whose header refers to other
// definitions by name.
type definition struct {
	name      string
	statement ast.Statement
	deps      []string
}

// sortDefinitions orders definitions so that each comes after the ones its
// header mentions. Ties keep source order; members of a cycle are appended
// in source order once nothing else can make progress.
func sortDefinitions(defs []definition) []definition {
	index := make(map[string]int, len(defs))
	for i, d := range defs {
		if _, dup := index[d.name]; !dup {
			index[d.name] = i
		}
	}
	pending := make([]int, len(defs))
	dependents := make([][]int, len(defs))
	for i, d := range defs {
		seen := map[int]bool{}
		for _, dep := range d.deps {
			j, ok := index[dep]
			if !ok || j == i || seen[j] {
				continue
			}
			seen[j] = true
			pending[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	out := make([]definition, 0, len(defs))
	done := make([]bool, len(defs))
	for len(out) < len(defs) {
		progressed := false
		for i := range defs {
			if done[i] || pending[i] > 0 {
				continue
			}
			done[i] = true
			out = append(out, defs[i])
			for _, j := range dependents[i] {
				pending[j]--
			}
			progressed = true
			break
		}
		if progressed {
			continue
		}
		for i := range defs {
			if !done[i] {
				done[i] = true
				out = append(out, defs[i])
				for _, j := range dependents[i] {
					pending[j]--
				}
				break
			}
		}
	}
	return out
}

// typeNames collects the unqualified type names a type expression mentions.
func typeNames(t ast.TypeExpression) []string {
	var names []string
	if t == nil {
		return nil
	}
	ast.Inspect(t, func(n ast.Node) bool {
		if tn, ok := n.(*ast.Typename); ok && tn.Qualifier == nil {
			names = append(names, tn.Identifier.Name)
		}
		return true
	})
	return names
}
