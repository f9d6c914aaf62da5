package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWarningSetEnablesEverything(t *testing.T) {
	ws := NewWarningSet()
	assert.True(t, ws.Enabled(WarnSignCompare))
	assert.True(t, ws.Enabled(WarnReturnLocalAddr))
	assert.True(t, ws.Enabled(WarnFormat))
}

func TestWarningSetSetToggles(t *testing.T) {
	ws := NewWarningSet()
	ws.Set(WarnExtraBraces, false)
	assert.False(t, ws.Enabled(WarnExtraBraces))
	ws.Set(WarnExtraBraces, true)
	assert.True(t, ws.Enabled(WarnExtraBraces))
}

func TestWarningSetParseEnableAndDisable(t *testing.T) {
	ws := NewWarningSet()
	assert.NoError(t, ws.Parse("no-sign-compare"))
	assert.False(t, ws.Enabled(WarnSignCompare))
	assert.NoError(t, ws.Parse("sign-compare"))
	assert.True(t, ws.Enabled(WarnSignCompare))
}

func TestWarningSetParseUnknownFlagErrors(t *testing.T) {
	ws := NewWarningSet()
	err := ws.Parse("not-a-real-warning")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-real-warning")
}

func TestWarningSetParseUnknownNoPrefixedFlagErrors(t *testing.T) {
	ws := NewWarningSet()
	err := ws.Parse("no-not-a-real-warning")
	assert.Error(t, err)
}

func TestWarningSetEnabledOnUnknownFlagIsFalse(t *testing.T) {
	ws := NewWarningSet()
	assert.False(t, ws.Enabled(WarningFlag("bogus")))
}
