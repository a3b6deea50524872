package planet

import (
	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
	"planet-designer/internal/shared/errors"
)

// Evaluate builds both states and their derived properties. Violations from both
// parameter sets are returned together, physical first.
func Evaluate(req EvaluateRequest) (*Report, error) {
	report, physViolations, compViolations := evaluate(req)
	if report == nil {
		return nil, errors.NewValidation(append(physViolations, compViolations...))
	}
	return report, nil
}

// Validate checks both parameter sets without failing
func Validate(req EvaluateRequest) ValidationReport {
	phys := physical.Validate(req.Physical)
	comp := composition.Validate(req.Composition)
	return ValidationReport{
		IsValid:     phys.IsValid && comp.IsValid,
		Physical:    phys,
		Composition: comp,
	}
}

func NewReport(phys *physical.State, comp *composition.State) *Report {
	return &Report{
		Physical: PhysicalReport{
			State:      phys,
			Properties: phys.Properties(),
		},
		Composition: CompositionReport{
			State:      comp,
			Properties: comp.Properties(),
		},
	}
}

func evaluate(req EvaluateRequest) (*Report, []string, []string) {
	phys, physErr := physical.New(req.Physical)
	comp, compErr := composition.New(req.Composition)

	physViolations := errors.Violations(physErr)
	compViolations := errors.Violations(compErr)
	if physErr != nil || compErr != nil {
		return nil, physViolations, compViolations
	}

	return NewReport(phys, comp), nil, nil
}
