package types

// Bindings maps type parameters to the types inferred for them.
type Bindings map[*Type]*Type

// Bind matches the parameter type param against the argument type arg and
// records what each type parameter inside param must be. A parameter bound
// more than once is widened to the common type of its arguments.
func (b Bindings) Bind(param, arg *Type) {
	if arg == nil {
		return
	}
	switch d := param.data.(type) {
	case *TypeParameterData:
		if _, open := b[param]; !open {
			return
		}
		arg = arg.Widen()
		if prev := b[param]; prev != nil {
			b[param] = prev.GetCommonType(arg)
		} else {
			b[param] = arg
		}
	case *NullableData:
		b.Bind(d.Item, arg.NonNull())
	case *ListData:
		switch a := arg.data.(type) {
		case *ListData:
			b.Bind(d.Item, a.Item)
		case *TupleData:
			for _, item := range a.Items {
				b.Bind(d.Item, item)
			}
		}
	case *IterableData:
		if item := arg.IterableItemType(); item != nil {
			b.Bind(d.Item, item)
		}
	case *PromiseData:
		if a, ok := arg.data.(*PromiseData); ok {
			b.Bind(d.Value, a.Value)
		}
	case *TupleData:
		if a, ok := arg.data.(*TupleData); ok && len(a.Items) == len(d.Items) {
			for i := range d.Items {
				b.Bind(d.Items[i], a.Items[i])
			}
		}
	case *LambdaData:
		calls := arg.GetMethodsHandlingArgumentCount("__call__", len(d.Parameters))
		if len(calls) == 0 {
			return
		}
		call := calls[0]
		for i, p := range call.Parameters {
			if i < len(d.Parameters) {
				b.Bind(d.Parameters[i], p.Type)
			}
		}
		b.Bind(d.Return, call.ReturnType)
	case *UnionData:
		// Only a single open member can be inferred unambiguously.
		var open *Type
		for _, m := range d.Members {
			if b.mentions(m) {
				if open != nil {
					return
				}
				open = m
			}
		}
		if open != nil {
			b.Bind(open, arg)
		}
	}
}

// Open makes each of params bindable.
func (b Bindings) Open(params ...*Type) Bindings {
	for _, p := range params {
		if _, ok := b[p]; !ok {
			b[p] = nil
		}
	}
	return b
}

func (b Bindings) mentions(t *Type) bool {
	switch d := t.data.(type) {
	case *TypeParameterData:
		_, ok := b[t]
		return ok
	case *NullableData:
		return b.mentions(d.Item)
	case *ListData:
		return b.mentions(d.Item)
	case *IterableData:
		return b.mentions(d.Item)
	case *PromiseData:
		return b.mentions(d.Value)
	case *TupleData:
		for _, item := range d.Items {
			if b.mentions(item) {
				return true
			}
		}
	case *LambdaData:
		for _, p := range d.Parameters {
			if b.mentions(p) {
				return true
			}
		}
		return b.mentions(d.Return)
	case *UnionData:
		for _, m := range d.Members {
			if b.mentions(m) {
				return true
			}
		}
	}
	return false
}

// Substitute replaces bound type parameters in t. Unbound parameters become
// Any.
func (b Bindings) Substitute(t *Type) *Type {
	if len(b) == 0 || t == nil {
		return t
	}
	switch d := t.data.(type) {
	case *TypeParameterData:
		bound, open := b[t]
		switch {
		case !open:
			return t
		case bound == nil:
			return Any
		}
		return bound
	case *NullableData:
		return b.Substitute(d.Item).Nullable()
	case *ListData:
		return b.Substitute(d.Item).List()
	case *IterableData:
		return b.Substitute(d.Item).Iterable()
	case *PromiseData:
		return b.Substitute(d.Value).Promise()
	case *TupleData:
		items := make([]*Type, len(d.Items))
		for i, item := range d.Items {
			items[i] = b.Substitute(item)
		}
		return Tuple(items...)
	case *LambdaData:
		params := make([]*Type, len(d.Parameters))
		for i, p := range d.Parameters {
			params[i] = b.Substitute(p)
		}
		return Lambda(params, b.Substitute(d.Return))
	case *UnionData:
		members := make([]*Type, len(d.Members))
		for i, m := range d.Members {
			members[i] = b.Substitute(m)
		}
		return CommonTypeOf(members...)
	}
	return t
}

// Expected is the type an argument for a parameter of type t is solved
// against: t with the bindings so far, or nil while t still mentions an
// unbound parameter. Function types are substituted regardless so that a
// lambda argument learns its parameter types from earlier arguments.
func (b Bindings) Expected(t *Type) *Type {
	if _, ok := t.NonNull().data.(*LambdaData); !ok {
		open := Bindings{}
		for p, bound := range b {
			if bound == nil {
				open[p] = nil
			}
		}
		if open.mentions(t) {
			return nil
		}
	}
	return b.Substitute(t)
}

// Partial is Substitute but leaves unbound parameters in place, so that a
// lambda argument can be solved against what is known so far.
func (b Bindings) Partial(t *Type) *Type {
	known := Bindings{}
	for k, v := range b {
		if v != nil {
			known[k] = v
		}
	}
	return known.Substitute(t)
}

// Instantiate returns a copy of m with its bound type parameters replaced.
func (b Bindings) Instantiate(m *Method) *Method {
	out := *m
	out.TypeParameters = nil
	out.Parameters = make([]Parameter, len(m.Parameters))
	for i, p := range m.Parameters {
		p.Type = b.Substitute(p.Type)
		out.Parameters[i] = p
	}
	out.ReturnType = b.Substitute(m.ReturnType)
	return &out
}
