package verdict_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/programme-lv/stresser/internal/verdict"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		candidate  string
		references []string
		want       verdict.Verdict
	}{
		{
			name:       "all references match",
			candidate:  "42\n",
			references: []string{"42\n", "42\n", "42\n"},
			want:       verdict.AllMatch,
		},
		{
			name:       "single matching reference",
			candidate:  "42\n",
			references: []string{"42\n"},
			want:       verdict.AllMatch,
		},
		{
			name:       "consistent references disagree with candidate",
			candidate:  "41\n",
			references: []string{"42\n", "42\n", "42\n"},
			want:       verdict.CandidateMismatch,
		},
		{
			name:       "single disagreeing reference",
			candidate:  "42\n",
			references: []string{"42\n", "42\n", "41\n"},
			want:       verdict.CandidateMismatch,
		},
		{
			name:       "pairwise distinct references",
			candidate:  "w\n",
			references: []string{"x\n", "y\n", "z\n"},
			want:       verdict.ReferenceInconsistency,
		},
		{
			name:       "inconsistent even when candidate matches one reference",
			candidate:  "x\n",
			references: []string{"x\n", "y\n", "z\n"},
			want:       verdict.ReferenceInconsistency,
		},
		{
			name:       "no normalization of whitespace",
			candidate:  "42",
			references: []string{"42\n"},
			want:       verdict.CandidateMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := verdict.Classify(tt.candidate, tt.references)
			assert.Equal(t, tt.want, got.Verdict)
			assert.Equal(t, tt.candidate, got.CandidateOutput)
		})
	}
}

func TestClassifyMismatchCarriesDisagreeingOutputs(t *testing.T) {
	got := verdict.Classify("1\n", []string{"2\n", "1\n", "2\n"})

	assert.Equal(t, verdict.CandidateMismatch, got.Verdict)
	assert.Equal(t, []string{"2\n", "2\n"}, got.Disagreeing)
	assert.Empty(t, got.References)
}

func TestClassifyInconsistencyCarriesAllReferences(t *testing.T) {
	refs := []string{"a", "b", "c", "a"}
	got := verdict.Classify("a", refs)

	assert.Equal(t, verdict.ReferenceInconsistency, got.Verdict)
	assert.Equal(t, refs, got.References)
	assert.Empty(t, got.Disagreeing)
}

func TestClassifyIsOrderIndependent(t *testing.T) {
	refs := []string{"x", "x", "y", "z", "x"}
	want := verdict.Classify("x", refs).Verdict

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		shuffled := append([]string(nil), refs...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, verdict.Classify("x", shuffled).Verdict)
	}
}
