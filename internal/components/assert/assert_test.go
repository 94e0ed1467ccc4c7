package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type reporter interface {
	Report(id string)
}

type recorder struct{}

func (*recorder) Report(string) {}

func TestNotNil(t *testing.T) {
	require.PanicsWithValue(t, "tel must not be nil", func() { NotNil(nil, "tel") })

	var typed *recorder
	var iface reporter = typed
	require.PanicsWithValue(t, "tel must not be nil (got nil *assert.recorder)", func() { NotNil(iface, "tel") })

	require.NotPanics(t, func() { NotNil(&recorder{}, "tel") })
	require.NotPanics(t, func() { NotNil(struct{}{}, "tel") })
	require.NotPanics(t, func() { NotNil(0, "tel") })
}
