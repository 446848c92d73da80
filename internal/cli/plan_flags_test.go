package cli

import (
	"testing"

	"github.com/alexanderramin/cityplan/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsePlanFlags(t *testing.T, args ...string) (*planFieldFlags, *pflag.FlagSet) {
	t.Helper()
	var f planFieldFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse(args))
	return &f, fs
}

func TestPlanFieldFlags_OnlyChangedFieldsPatched(t *testing.T) {
	f, fs := parsePlanFlags(t, "--budget", "0", "--goal", "COMMERCIAL")

	assert.True(t, f.anyChanged(fs))
	in, err := f.patch(fs)
	require.NoError(t, err)

	require.NotNil(t, in.Budget)
	assert.Equal(t, 0.0, *in.Budget, "an explicit zero is still a value")
	assert.Equal(t, domain.GoalCommercial, *in.PrimaryGoal)
	assert.Nil(t, in.CityName)
	assert.Nil(t, in.Population)
	assert.Nil(t, in.DisasterTypes)
}

func TestPlanFieldFlags_NoneChanged(t *testing.T) {
	f, fs := parsePlanFlags(t)
	assert.False(t, f.anyChanged(fs))

	in, err := f.patch(fs)
	require.NoError(t, err)
	assert.True(t, in.IsEmpty())
}

func TestPlanFieldFlags_EmptyDisasterClearsSet(t *testing.T) {
	f, fs := parsePlanFlags(t, "--disaster", "")
	in, err := f.patch(fs)
	require.NoError(t, err)
	assert.NotNil(t, in.DisasterTypes)
	assert.Empty(t, in.DisasterTypes)
}

func TestPlanFieldFlags_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"--water", "invalid water availability"},
		{"--risk", "invalid disaster risk level"},
		{"--goal", "invalid primary goal"},
		{"--disaster", "invalid disaster type"},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f, fs := parsePlanFlags(t, tt.flag, "bogus")
			_, err := f.patch(fs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPlanFieldFlags_RejectsNonFiniteNumbers(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--budget", "Inf"}, "--budget: budget must be a finite number"},
		{[]string{"--budget", "NaN"}, "--budget: budget must be a finite number"},
		{[]string{"--budget", "1e20"}, "must not exceed"},
		{[]string{"--budget", "-100"}, "must not be negative"},
		{[]string{"--growth", "NaN"}, "--growth must be a finite number"},
		{[]string{"--lat", "-Inf"}, "--lat must be a finite number"},
		{[]string{"--lon", "+Inf"}, "--lon must be a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.args[0]+"="+tt.args[1], func(t *testing.T) {
			f, fs := parsePlanFlags(t, tt.args...)
			_, err := f.patch(fs)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
