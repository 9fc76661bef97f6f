package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRuleAlloc(t *testing.T) {
	before := testutil.ToFloat64(RulePoolUsed.WithLabelValues("pdr"))
	RecordRuleAlloc("pdr")
	after := testutil.ToFloat64(RulePoolUsed.WithLabelValues("pdr"))
	assert.Equal(t, before+1, after)
}

func TestSetHashEntries(t *testing.T) {
	SetHashEntries("pdr", 5)
	assert.Equal(t, float64(5), testutil.ToFloat64(HashEntries.WithLabelValues("pdr")))
}

func TestSetUEIPPoolAvailable(t *testing.T) {
	SetUEIPPoolAvailable("internet", 42)
	assert.Equal(t, float64(42), testutil.ToFloat64(UEIPPoolAvailable.WithLabelValues("internet")))
}

func TestRecordDecodeError(t *testing.T) {
	before := testutil.ToFloat64(DecodeErrors.WithLabelValues("pco"))
	RecordDecodeError("pco")
	after := testutil.ToFloat64(DecodeErrors.WithLabelValues("pco"))
	assert.Equal(t, before+1, after)
}

func TestRecordConfigError(t *testing.T) {
	before := testutil.ToFloat64(ConfigErrors.WithLabelValues("local.pfcp"))
	RecordConfigError("local.pfcp")
	after := testutil.ToFloat64(ConfigErrors.WithLabelValues("local.pfcp"))
	assert.Equal(t, before+1, after)
}
