package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CountersAccumulate(t *testing.T) {
	r := New()
	r.IncTotal()
	r.IncTotal()
	r.IncSuccess()
	r.IncFail()

	s := r.Snapshot()
	assert.Equal(t, 2.0, s.Total)
	assert.Equal(t, 1.0, s.Success)
	assert.Equal(t, 1.0, s.Fail)
}

func TestRegistry_DurationIsOverwritten(t *testing.T) {
	r := New()
	r.SetDuration(1.5)
	r.SetDuration(0.25)
	assert.Equal(t, 0.25, r.Snapshot().DurationSeconds)
}

func TestRegistry_HandlerExposesNames(t *testing.T) {
	r := New()
	r.IncTotal()
	r.SetDuration(0.042)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	for _, name := range []string{ProbeTotal, ProbeSuccessTotal, ProbeFailTotal, ProbeDurationSeconds} {
		assert.Contains(t, string(body), name)
	}
	assert.Contains(t, string(body), ProbeDurationSeconds+" 0.042")
}

func TestRegistry_IndependentInstances(t *testing.T) {
	a, b := New(), New()
	a.IncTotal()
	assert.Equal(t, 0.0, b.Snapshot().Total)
}
