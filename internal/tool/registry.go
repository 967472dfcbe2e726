package tool

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const maxSuggestions = 3

// Registry is the immutable tool catalog. It is built once at start-up and
// only read afterwards, so it needs no locking.
type Registry struct {
	byName  map[string]*Descriptor
	ordered []*Descriptor
}

// NewRegistry validates and indexes descriptors. Names must be unique and every
// input schema must compile as JSON Schema.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{
		byName:  make(map[string]*Descriptor, len(descriptors)),
		ordered: make([]*Descriptor, 0, len(descriptors)),
	}

	for i := range descriptors {
		d := descriptors[i]
		name := d.Name()
		if name == "" {
			return nil, fmt.Errorf("descriptor %d has no name", i)
		}
		if _, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("tool %s registered twice", name)
		}
		if d.Query == "" {
			return nil, fmt.Errorf("tool %s has no query", name)
		}
		if err := compileInputSchema(&d); err != nil {
			return nil, err
		}
		r.byName[name] = &d
		r.ordered = append(r.ordered, &d)
	}
	return r, nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	if d, ok := r.byName[name]; ok {
		return d, nil
	}
	return nil, &NotFoundError{Name: name, Suggestions: r.suggest(name)}
}

// List returns every descriptor in registration order.
func (r *Registry) List() []*Descriptor {
	out := make([]*Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.ordered)
}

func (r *Registry) suggest(name string) []string {
	if name == "" {
		return nil
	}
	targets := make([]string, 0, len(r.ordered))
	for _, d := range r.ordered {
		targets = append(targets, d.Name())
	}

	ranks := fuzzy.RankFindFold(name, targets)
	sort.Sort(ranks)

	var out []string
	for _, rank := range ranks {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, rank.Target)
	}
	return out
}

func compileInputSchema(d *Descriptor) error {
	raw, err := json.Marshal(d.Tool.InputSchema)
	if len(d.Tool.RawInputSchema) > 0 {
		raw, err = d.Tool.RawInputSchema, nil
	}
	if err != nil {
		return fmt.Errorf("tool %s: encode input schema: %w", d.Name(), err)
	}
	if _, err := jsonschema.CompileString(d.Name()+".json", string(raw)); err != nil {
		return fmt.Errorf("tool %s: invalid input schema: %w", d.Name(), err)
	}
	return nil
}
