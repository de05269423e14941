package services

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// CriteriaCount is the number of criteria every rubric must define.
const CriteriaCount = 5

//go:embed rubric.yaml
var defaultRubricYAML []byte

// Criterion is one scored dimension of the rubric.
type Criterion struct {
	Number      int    `yaml:"number"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Rubric is the set of criteria the provider scores an essay against.
type Rubric struct {
	Name                 string      `yaml:"name"`
	MaxScorePerCriterion int         `yaml:"max_score_per_criterion"`
	Criteria             []Criterion `yaml:"criteria"`
}

// MaxOverallScore is the highest possible sum of the criterion scores.
func (r Rubric) MaxOverallScore() int {
	return r.MaxScorePerCriterion * len(r.Criteria)
}

// ParseRubric decodes and validates a YAML rubric document.
func ParseRubric(data []byte) (Rubric, error) {
	var r Rubric
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rubric{}, fmt.Errorf("failed to unmarshal rubric: %w", err)
	}
	if err := r.validate(); err != nil {
		return Rubric{}, err
	}
	return r, nil
}

// DefaultRubric returns the embedded five-competency rubric.
func DefaultRubric() Rubric {
	r, err := ParseRubric(defaultRubricYAML)
	if err != nil {
		panic("embedded rubric is invalid: " + err.Error())
	}
	return r
}

func (r Rubric) validate() error {
	if r.MaxScorePerCriterion <= 0 {
		return fmt.Errorf("rubric: max_score_per_criterion must be > 0 (got %d)", r.MaxScorePerCriterion)
	}
	if len(r.Criteria) != CriteriaCount {
		return fmt.Errorf("rubric: expected %d criteria, got %d", CriteriaCount, len(r.Criteria))
	}
	for i, c := range r.Criteria {
		if c.Number != i+1 {
			return fmt.Errorf("rubric: criterion %d has number %d", i+1, c.Number)
		}
		if c.Title == "" {
			return fmt.Errorf("rubric: criterion %d has no title", c.Number)
		}
	}
	return nil
}
