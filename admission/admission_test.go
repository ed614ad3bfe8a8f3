package admission

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tinylfu/freqsketch/sketch"
)

func buildHotColdSketch(t *testing.T) *sketch.FrequencySketch {
	t.Helper()
	f, err := sketch.New(4, 128, 1, 1000)
	require.NoError(t, err)
	for i := 0; i < 400; i++ {
		f.Add("hot", 1)
	}
	for i := 0; i < 4; i++ {
		f.Add("cold", 1)
	}
	return f
}

// TestAdmissionRule is spec §8 scenario S6.
func TestAdmissionRule(t *testing.T) {
	f := buildHotColdSketch(t)
	p := New(f)

	require.True(t, p.Admit("hot", "cold"))
	require.False(t, p.Admit("cold", "hot"))
	require.False(t, p.Admit("cold", "cold"), "ties must reject by default")
}

func TestAdmitRejectsOnTieByDefault(t *testing.T) {
	f, err := sketch.New(4, 64, 1, 1000)
	require.NoError(t, err)
	p := New(f)
	require.False(t, p.Admit("never-seen-a", "never-seen-b"))
}

func TestWithTieBreakerOverridesDefault(t *testing.T) {
	f, err := sketch.New(4, 64, 1, 1000)
	require.NoError(t, err)
	p := New(f, WithTieBreaker(func() bool { return true }))
	require.True(t, p.Admit("never-seen-a", "never-seen-b"))
}

func TestRecordThenAdmitFirstSight(t *testing.T) {
	f, err := sketch.New(4, 64, 1, 1000)
	require.NoError(t, err)
	p := New(f)

	// A never-seen victim with a just-recorded candidate: candidate has
	// frequency 1, victim has frequency 0, so admission should succeed.
	p.Record("candidate")
	require.True(t, p.Admit("candidate", "victim"))
}
