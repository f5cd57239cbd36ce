/*
Package tcconfig reads toolchain definition files. A toolchain definition
selects the Cray Programming Environment vendor and sets toolchain options:

	vendor  = "GNU"
	optarch = "x86-rome"
	options = {
	  openmp  = true
	  dynamic = false
	}

The optarch attribute is optional and overrides the "optarch" build option.
*/
package tcconfig

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// File is a decoded toolchain definition.
type File struct {
	Vendor  string
	Optarch string
	Options map[string]bool
}

type fileSchema struct {
	Vendor  string         `hcl:"vendor"`
	Optarch string         `hcl:"optarch,optional"`
	Options hcl.Expression `hcl:"options,optional"`
}

// Load reads the toolchain definition file at path.
func Load(path string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("tcconfig: failed to parse %s: %w", path, diags)
	}

	return decode(f)
}

// Parse reads a toolchain definition from src. filename is only used in error messages.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("tcconfig: failed to parse %s: %w", filename, diags)
	}

	return decode(f)
}

func decode(f *hcl.File) (*File, error) {
	var schema fileSchema
	if diags := gohcl.DecodeBody(f.Body, nil, &schema); diags.HasErrors() {
		return nil, fmt.Errorf("tcconfig: %w", diags)
	}

	options, err := decodeOptions(schema.Options)
	if err != nil {
		return nil, err
	}

	return &File{
		Vendor:  schema.Vendor,
		Optarch: schema.Optarch,
		Options: options,
	}, nil
}

func decodeOptions(expr hcl.Expression) (map[string]bool, error) {
	options := map[string]bool{}
	if expr == nil {
		return options, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("tcconfig: %w", diags)
	}

	if val.IsNull() {
		return options, nil
	}

	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("tcconfig: options must be an object, got %s", ty.FriendlyName())
	}

	for it := val.ElementIterator(); it.Next(); {
		key, v := it.Element()
		name := key.AsString()

		b, err := convert.Convert(v, cty.Bool)
		if err != nil {
			return nil, fmt.Errorf("tcconfig: option %q: %w", name, err)
		}
		if b.IsNull() || !b.IsKnown() {
			return nil, fmt.Errorf("tcconfig: option %q has no value", name)
		}

		options[name] = b.True()
	}

	return options, nil
}
