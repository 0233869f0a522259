package args

// Merge layers override on top of base, field by field: for every
// schema option the override provides, its value wins; otherwise the
// base value is kept. Which options count as provided in the result is
// the union of both inputs.
//
// Positional arguments are taken from the override when it has any,
// else from the base.
func Merge(base, override *ArgSet) *ArgSet {
	out := NewArgSet()

	for i := range Options {
		spec := &Options[i]
		src := base
		if override.IsSet(spec.Name) {
			src = override
		} else if !base.IsSet(spec.Name) {
			continue
		}
		copyField(out, src, spec)
		out.markSet(spec.Name)
	}
	out.flagCount = base.flagCount + override.flagCount

	if len(override.Positional) > 0 {
		out.Positional = append([]string(nil), override.Positional...)
	} else if len(base.Positional) > 0 {
		out.Positional = append([]string(nil), base.Positional...)
	}

	return out
}

func copyField(dst, src *ArgSet, spec *OptionSpec) {
	switch spec.Kind {
	case KindBool:
		*spec.boolField(dst) = *spec.boolField(src)
	case KindString:
		*spec.stringField(dst) = *spec.stringField(src)
	case KindStringList:
		*spec.listField(dst) = append([]string(nil), *spec.listField(src)...)
	case KindOptionalString:
		*spec.optionalField(dst) = *spec.optionalField(src)
	case KindNumber:
		*spec.numberField(dst) = *spec.numberField(src)
	case KindAuth:
		*spec.authField(dst) = *spec.authField(src)
	case KindLogLevel:
		*spec.levelField(dst) = *spec.levelField(src)
	}
}
