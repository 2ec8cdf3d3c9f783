package report

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSection is a minimal Section implementation for registry tests.
type stubSection struct {
	name string
	desc string
	err  error
	out  string
}

func (s *stubSection) Name() string           { return s.name }
func (s *stubSection) Description() string    { return s.desc }
func (s *stubSection) Analyze(_ *Input) error { return s.err }
func (s *stubSection) Render(w io.Writer) error {
	_, err := io.WriteString(w, s.out)
	return err
}

// restoreSections resets the registry and re-registers all init-registered sections.
func restoreSections() {
	resetForTesting()
	Register(&overviewSection{})
	Register(&metricsSection{})
	Register(&anomaliesSection{})
	Register(&historySection{})
}

func TestRegister_And_Get(t *testing.T) {
	resetForTesting()
	defer restoreSections()

	Register(&stubSection{name: "test-section", desc: "A test section"})

	got := Get("test-section")
	require.NotNil(t, got)
	assert.Equal(t, "test-section", got.Name())
	assert.Equal(t, "A test section", got.Description())
}

func TestRegister_DuplicatePanics(t *testing.T) {
	resetForTesting()
	defer restoreSections()

	Register(&stubSection{name: "dup"})
	assert.Panics(t, func() {
		Register(&stubSection{name: "dup"})
	})
}

func TestGet_NotFound(t *testing.T) {
	assert.Nil(t, Get("nonexistent"))
}

func TestList_ReturnsRegistrationOrder(t *testing.T) {
	resetForTesting()
	defer restoreSections()

	Register(&stubSection{name: "charlie"})
	Register(&stubSection{name: "alpha"})
	Register(&stubSection{name: "bravo"})

	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, List())
}

func TestList_ReturnsCopy(t *testing.T) {
	resetForTesting()
	defer restoreSections()

	Register(&stubSection{name: "one"})
	names := List()
	names[0] = "mutated"
	assert.Equal(t, []string{"one"}, List())
}

func TestBuiltinSections(t *testing.T) {
	assert.ElementsMatch(t, []string{"overview", "metrics", "anomalies", "history"}, List())
}

func TestErrNoData_Wraps(t *testing.T) {
	wrapped := errors.Join(ErrNoData, errors.New("no reports"))
	assert.True(t, errors.Is(wrapped, ErrNoData))
}
