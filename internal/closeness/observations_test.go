package closeness

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	input := "t,d1,d2,p_close\n" +
		"0.1,car_1,car_2,0.5\n" +
		"0.1,car_1,ped_3,0.25\n" +
		"0.2,car_2,ped_3,0.9\n"

	obs, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)

	want := []Observation{
		{T: "0.1", D1: "car_1", D2: "car_2", PClose: 0.5},
		{T: "0.1", D1: "car_1", D2: "ped_3", PClose: 0.25},
		{T: "0.2", D1: "car_2", D2: "ped_3", PClose: 0.9},
	}
	if diff := cmp.Diff(want, obs); diff != "" {
		t.Errorf("observations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCSVColumnOrderIndependent(t *testing.T) {
	t.Parallel()

	input := "p_close,d2,d1,t\n0.5,b,a,10\n"
	obs, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, Observation{T: "10", D1: "a", D2: "b", PClose: 0.5}, obs[0])
}

func TestLoadCSVMissingColumn(t *testing.T) {
	t.Parallel()

	_, err := LoadCSV(strings.NewReader("t,d1,d2\n1,a,b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p_close")
}

func TestLoadCSVBadProbability(t *testing.T) {
	t.Parallel()

	_, err := LoadCSV(strings.NewReader("t,d1,d2,p_close\n1,a,b,high\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

// Out-of-range probabilities load fine here; they are rejected with a
// DomainError when the timestep's program is built.
func TestLoadCSVKeepsOutOfRangeProbability(t *testing.T) {
	t.Parallel()

	obs, err := LoadCSV(strings.NewReader("t,d1,d2,p_close\n1,a,b,1.5\n"))
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, 1.5, obs[0].PClose)
}

func TestGroupByTimestepFirstAppearanceOrder(t *testing.T) {
	t.Parallel()

	obs := []Observation{
		{T: "b", D1: "x", D2: "y", PClose: 0.1},
		{T: "a", D1: "x", D2: "z", PClose: 0.2},
		{T: "b", D1: "y", D2: "z", PClose: 0.3},
	}

	groups := GroupByTimestep(obs)
	require.Len(t, groups, 2)
	assert.Equal(t, "b", groups[0].T)
	assert.Len(t, groups[0].Rows, 2)
	assert.Equal(t, "a", groups[1].T)
	assert.Len(t, groups[1].Rows, 1)
}

func TestGroupByTimestepEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GroupByTimestep(nil))
}
