package guided

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	prompts := []string{"q1", "q2", "q3"}
	s := NewSequence("Technical support", prompts)
	prompts[0] = "mutated"

	assert.Equal(t, "Technical support", s.Topic())
	assert.Equal(t, 3, s.Len())

	for i, answer := range []string{"a1", "a2", "a3"} {
		assert.Equal(t, i, s.Cursor())
		assert.Len(t, s.Answers(), s.Cursor())

		prompt, ok := s.Current()
		require.True(t, ok)
		a, err := s.Record(answer)
		require.NoError(t, err)
		assert.Equal(t, prompt, a.Question)
		assert.Equal(t, answer, a.Answer)
	}

	assert.True(t, s.Done())
	assert.Equal(t, 3, s.Cursor())
	assert.Equal(t, []Answer{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
		{Question: "q3", Answer: "a3"},
	}, s.Answers())

	_, err := s.Record("extra")
	assert.ErrorIs(t, err, ErrSequenceComplete)
	assert.Equal(t, 3, s.Cursor())
	assert.Len(t, s.Answers(), 3)

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSequenceAnswersIsACopy(t *testing.T) {
	s := NewSequence("t", []string{"q"})
	_, err := s.Record("a")
	require.NoError(t, err)

	answers := s.Answers()
	answers[0].Answer = "changed"
	assert.Equal(t, "a", s.Answers()[0].Answer)
}
