package toolchain

import "fmt"

// OptionSpec declares an abstract toolchain switch.
type OptionSpec struct {
	// Name of the option, for example "openmp".
	Name string
	// Default value used when the option is not set explicitly.
	Default bool
	// Description is a human readable explanation of the option.
	Description string
}

// Options holds the registered toolchain options and their values.
// Options are kept in registration order.
type Options struct {
	specs  []OptionSpec
	index  map[string]int
	values map[string]bool
}

// NewOptions returns a set of options with the given specs registered.
func NewOptions(specs ...OptionSpec) (*Options, error) {
	o := &Options{index: map[string]int{}, values: map[string]bool{}}
	if err := o.Register(specs...); err != nil {
		return nil, err
	}

	return o, nil
}

// Register adds the given option specs. Registering an option that already
// exists replaces its default value and description, keeping its position
// and any value that was explicitly set.
func (o *Options) Register(specs ...OptionSpec) error {
	if o.index == nil {
		o.index = map[string]int{}
	}

	for _, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("toolchain: option with empty name")
		}

		if i, ok := o.index[spec.Name]; ok {
			o.specs[i] = spec
			continue
		}

		o.index[spec.Name] = len(o.specs)
		o.specs = append(o.specs, spec)
	}

	return nil
}

// Set changes the value of a registered option.
func (o *Options) Set(name string, value bool) error {
	if _, ok := o.index[name]; !ok {
		return NewConfigError(ErrUnknownOption, "toolchain: unknown toolchain option %q", name)
	}

	if o.values == nil {
		o.values = map[string]bool{}
	}
	o.values[name] = value

	return nil
}

// Lookup returns the value of the option and whether the option is registered.
func (o *Options) Lookup(name string) (value, ok bool) {
	i, ok := o.index[name]
	if !ok {
		return false, false
	}

	if v, set := o.values[name]; set {
		return v, true
	}

	return o.specs[i].Default, true
}

// Enabled reports whether the option is registered and its value is true.
func (o *Options) Enabled(name string) bool {
	v, _ := o.Lookup(name)
	return v
}

// Spec returns the registered spec of the option.
func (o *Options) Spec(name string) (OptionSpec, bool) {
	i, ok := o.index[name]
	if !ok {
		return OptionSpec{}, false
	}

	return o.specs[i], true
}

// Names returns the names of the registered options, in registration order.
func (o *Options) Names() []string {
	names := make([]string, len(o.specs))
	for i, spec := range o.specs {
		names[i] = spec.Name
	}

	return names
}

// Specs returns a copy of the registered specs, in registration order.
func (o *Options) Specs() []OptionSpec {
	return append([]OptionSpec(nil), o.specs...)
}
