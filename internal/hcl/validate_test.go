package hcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/deptree/internal/plan"
)

func TestValidateAcceptsDiamond(t *testing.T) {
	p := &plan.Plan{Targets: []*plan.Target{
		{Name: "a"},
		{Name: "b", DependsOn: []string{"a"}},
		{Name: "c", DependsOn: []string{"a", "b"}},
	}}
	assert.NoError(t, Validate(p))
}

func TestValidateRejectsEmptyName(t *testing.T) {
	p := &plan.Plan{Targets: []*plan.Target{{Name: ""}}}
	assert.ErrorContains(t, Validate(p), "empty name")
}

func TestValidateRejectsCycleInDisjointComponent(t *testing.T) {
	p := &plan.Plan{Targets: []*plan.Target{
		{Name: "a"},
		{Name: "x", DependsOn: []string{"y"}},
		{Name: "y", DependsOn: []string{"x"}},
	}}
	err := Validate(p)
	require.Error(t, err)
	assert.ErrorContains(t, err, "dependency cycle")
}
