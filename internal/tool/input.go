package tool

// InputFunc adapts a function to InputPolicy.
type InputFunc func(args Arguments) (Arguments, error)

// Apply calls f.
func (f InputFunc) Apply(args Arguments) (Arguments, error) {
	return f(args)
}

// RequireList fails with MissingRequiredInputError when arg is absent, not a
// list, or an empty list. hint is shown to the caller as the way forward.
func RequireList(arg, hint string) InputPolicy {
	return InputFunc(func(args Arguments) (Arguments, error) {
		if n, ok := args.listLen(arg); !ok || n == 0 {
			return nil, &MissingRequiredInputError{Argument: arg, Hint: hint}
		}
		return args, nil
	})
}

// ForceFlags sets boolean flags regardless of what the caller sent.
func ForceFlags(flags map[string]bool) InputPolicy {
	return InputFunc(func(args Arguments) (Arguments, error) {
		out := args.Clone()
		for k, v := range flags {
			out[k] = v
		}
		return out, nil
	})
}

// NullCoalesce turns absent filter arguments into explicit nulls so the
// downstream call can tell "no filter" from "empty filter".
func NullCoalesce(names ...string) InputPolicy {
	return InputFunc(func(args Arguments) (Arguments, error) {
		out := args.Clone()
		for _, n := range names {
			if _, ok := out[n]; !ok {
				out[n] = nil
			}
		}
		return out, nil
	})
}

// ChainInput applies policies in order and stops at the first error.
func ChainInput(policies ...InputPolicy) InputPolicy {
	return InputFunc(func(args Arguments) (Arguments, error) {
		var err error
		for _, p := range policies {
			if p == nil {
				continue
			}
			if args, err = p.Apply(args); err != nil {
				return nil, err
			}
		}
		return args, nil
	})
}
