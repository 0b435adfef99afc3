package runpod

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWrapsNonMappings(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{name: "string", input: "plain string"},
		{name: "nil", input: nil},
		{name: "number", input: 42.0},
		{name: "list", input: []interface{}{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			assert.Equal(t, tt.input, result.Output)
			assert.Nil(t, result.Status)
			assert.Nil(t, result.ID)
			assert.Nil(t, result.WorkerID)
			assert.Nil(t, result.DelayTime)
			assert.Nil(t, result.ExecutionTime)
		})
	}
}

func TestNormalizePassThrough(t *testing.T) {
	input := map[string]interface{}{
		"delayTime":     120.0,
		"executionTime": 950.0,
		"id":            "job-abc",
		"status":        "COMPLETED",
		"workerId":      "worker-1",
		"output":        map[string]interface{}{"translated_text": "hello"},
	}

	result := Normalize(input)

	require.NotNil(t, result.DelayTime)
	assert.Equal(t, 120.0, *result.DelayTime)
	require.NotNil(t, result.ExecutionTime)
	assert.Equal(t, 950.0, *result.ExecutionTime)
	require.NotNil(t, result.ID)
	assert.Equal(t, "job-abc", *result.ID)
	require.NotNil(t, result.Status)
	assert.Equal(t, "COMPLETED", *result.Status)
	require.NotNil(t, result.WorkerID)
	assert.Equal(t, "worker-1", *result.WorkerID)
	assert.Equal(t, input["output"], result.Output)
}

func TestNormalizeSingleCanonicalKey(t *testing.T) {
	// One canonical key is enough to treat the document as already wrapped.
	input := map[string]interface{}{
		"status": "FAILED",
		"error":  "worker exploded",
	}

	result := Normalize(input)

	require.NotNil(t, result.Status)
	assert.Equal(t, "FAILED", *result.Status)
	// No output sub-field: the wrapper itself is the payload.
	assert.Equal(t, input, result.Output)
}

func TestNormalizeBarePayload(t *testing.T) {
	t.Run("nested output", func(t *testing.T) {
		inner := map[string]interface{}{"text": "hi"}
		result := Normalize(map[string]interface{}{"output": inner})

		assert.Equal(t, inner, result.Output)
		require.NotNil(t, result.Status)
		assert.Equal(t, string(StatusCompleted), *result.Status)
	})

	t.Run("no output key", func(t *testing.T) {
		payload := map[string]interface{}{"translated_text": "hello"}
		result := Normalize(payload)

		assert.Equal(t, payload, result.Output)
		require.NotNil(t, result.Status)
		assert.Equal(t, string(StatusCompleted), *result.Status)
	})

	t.Run("empty mapping", func(t *testing.T) {
		result := Normalize(map[string]interface{}{})

		assert.Equal(t, map[string]interface{}{}, result.Output)
		assert.Nil(t, result.Status)
	})

	t.Run("falsy output", func(t *testing.T) {
		result := Normalize(map[string]interface{}{"output": ""})

		assert.Equal(t, "", result.Output)
		assert.Nil(t, result.Status)
	})
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []interface{}{
		nil,
		"plain string",
		map[string]interface{}{},
		map[string]interface{}{"output": map[string]interface{}{"text": "hi"}},
		map[string]interface{}{"status": "COMPLETED", "id": "j1", "output": "done"},
		[]interface{}{1.0, 2.0},
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeOutputKeyAlwaysSerialized(t *testing.T) {
	// Callers dereference .output without a presence check, so the canonical
	// JSON form must always carry the key, even for nil output.
	data, err := json.Marshal(Normalize(nil))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	_, present := doc["output"]
	assert.True(t, present)
}

func TestNormalizeRawJobDetails(t *testing.T) {
	details := RawJobDetails{
		"status": "COMPLETED",
		"output": "done",
	}

	result := Normalize(details)
	require.NotNil(t, result.Status)
	assert.Equal(t, "COMPLETED", *result.Status)
	assert.Equal(t, "done", result.Output)
}
