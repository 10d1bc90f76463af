package bionet

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dd0wney/bionet/pkg/logging"
	"github.com/dd0wney/bionet/pkg/validation"
)

// AddParameter stores a parameter, replacing any parameter with the same name.
func (b *BioNet) AddParameter(name string, value float64) error {
	if err := validation.ValidateParameter(name, value); err != nil {
		err = NewError("add_parameter").Parameter(name).Cause(fmt.Errorf("%w: %v", ErrInvalidParameter, err)).Err()
		b.record("add_parameter", err)
		return err
	}
	b.parameters[name] = Parameter{Name: name, Value: value}
	b.logger.Debug("parameter set", logging.String("parameter", name), logging.Float64("value", value))
	b.record("add_parameter", nil)
	return nil
}

// CreateParameters replaces the whole parameter collection. The batch is
// checked first; on error the previous collection is kept.
func (b *BioNet) CreateParameters(params []Parameter) error {
	const op = "create_parameters"

	next := make(map[string]Parameter, len(params))
	for _, p := range params {
		if err := validation.ValidateParameter(p.Name, p.Value); err != nil {
			err = NewError(op).Parameter(p.Name).Cause(fmt.Errorf("%w: %v", ErrInvalidParameter, err)).Err()
			b.record(op, err)
			return err
		}
		if _, dup := next[p.Name]; dup {
			err := NewError(op).Parameter(p.Name).Context("repeated in batch").Cause(ErrInvalidParameter).Err()
			b.record(op, err)
			return err
		}
		next[p.Name] = p
	}
	b.parameters = next
	b.logger.Debug("parameters replaced", logging.Count(len(next)))
	b.record(op, nil)
	return nil
}

// Parameter returns the parameter with the given name
func (b *BioNet) Parameter(name string) (Parameter, error) {
	p, ok := b.parameters[name]
	if !ok {
		return Parameter{}, NewError("get").Parameter(name).Cause(ErrParameterNotFound).Err()
	}
	return p, nil
}

// Parameters returns all parameters sorted by name
func (b *BioNet) Parameters() []Parameter {
	out := make([]Parameter, 0, len(b.parameters))
	for _, p := range b.parameters {
		out = append(out, p)
	}
	slices.SortFunc(out, func(x, y Parameter) int { return strings.Compare(x.Name, y.Name) })
	return out
}
