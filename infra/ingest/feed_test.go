package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bananai/brokerage/core/model"
	"github.com/bananai/brokerage/infra/logger"
)

type captureSink struct {
	batchIDs []string
	samples  []model.Sample
	err      error
}

func (c *captureSink) IngestSample(_ context.Context, batchID string, s model.Sample) error {
	if c.err != nil {
		return c.err
	}
	c.batchIDs = append(c.batchIDs, batchID)
	c.samples = append(c.samples, s)
	return nil
}

func testFeed(sink SampleSink) *Feed {
	return &Feed{sink: sink, log: logger.NopLogger{}}
}

func TestHandlePayloadAcceptsValidDetections(t *testing.T) {
	sink := &captureSink{}
	f := testFeed(sink)
	payload := `{
		"batch_id": "BATCH-1",
		"timestamp": 1714550000,
		"detections": [
			{"length_cm": 18.2, "ripeness": "mid-ripe", "confidence": 0.91, "mean_hsv": [24, 180, 200]},
			{"length_cm": 16.0, "ripeness": "ripe", "confidence": 0.85, "mean_hsv": [20, 170, 190]}
		]
	}`
	n, err := f.handlePayload(context.Background(), []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, sink.samples, 2)
	assert.Equal(t, "BATCH-1", sink.batchIDs[0])
	assert.Equal(t, 18.2, sink.samples[0].LengthCM)
	assert.Equal(t, [3]float64{24, 180, 200}, sink.samples[0].MeanHSV)
}

func TestHandlePayloadSkipsMalformedDetections(t *testing.T) {
	sink := &captureSink{}
	f := testFeed(sink)
	payload := `{
		"batch_id": "BATCH-1",
		"detections": [
			{"length_cm": 0, "ripeness": "ripe", "confidence": 0.9},
			{"length_cm": 18, "ripeness": "ripe", "confidence": 1.7},
			{"length_cm": 18, "ripeness": "ripe", "confidence": 0.9}
		]
	}`
	n, err := f.handlePayload(context.Background(), []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only the valid detection should pass")
}

func TestHandlePayloadRejectsBadEnvelope(t *testing.T) {
	f := testFeed(&captureSink{})
	_, err := f.handlePayload(context.Background(), []byte("{not json"))
	assert.Error(t, err)
	_, err = f.handlePayload(context.Background(), []byte(`{"detections": []}`))
	assert.Error(t, err, "missing batch_id must be rejected")
}

func TestHandlePayloadSinkErrorsAreSkipped(t *testing.T) {
	sink := &captureSink{err: errors.New("unknown batch")}
	f := testFeed(sink)
	payload := `{"batch_id": "ghost", "detections": [{"length_cm": 18, "ripeness": "ripe", "confidence": 0.9}]}`
	n, err := f.handlePayload(context.Background(), []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
