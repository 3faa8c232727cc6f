package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordMutationOutcomes(t *testing.T) {
	success := MutationsTotal.WithLabelValues("venue", "create", "success")
	failure := MutationsTotal.WithLabelValues("venue", "create", "failure")
	beforeSuccess := testutil.ToFloat64(success)
	beforeFailure := testutil.ToFloat64(failure)

	RecordMutation("venue", "create", nil)
	RecordMutation("venue", "create", errors.New("boom"))
	RecordMutation("venue", "create", errors.New("boom"))

	assert.Equal(t, beforeSuccess+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeFailure+2, testutil.ToFloat64(failure))
}

func TestRecordHTTPRequest(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues("GET", "GET /venues", "200")
	before := testutil.ToFloat64(counter)

	RecordHTTPRequest("GET", "GET /venues", "200", 15*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
