package runpod

// NormalizedResult is the canonical result shape handed to callers. Output is
// always populated, whatever the remote answered, so downstream code can
// dereference it without a nil check.
type NormalizedResult struct {
	DelayTime     *float64    `json:"delayTime,omitempty"`
	ExecutionTime *float64    `json:"executionTime,omitempty"`
	ID            *string     `json:"id,omitempty"`
	Output        interface{} `json:"output"`
	Status        *string     `json:"status,omitempty"`
	WorkerID      *string     `json:"workerId,omitempty"`
}

// canonicalKeys mark a document as already platform-wrapped. The worker and
// the platform's own wrapping do not consistently nest results, so the same
// logical payload sometimes arrives wrapped and sometimes bare.
var canonicalKeys = []string{"delayTime", "executionTime", "id", "status", "workerId"}

// Normalize maps an arbitrary job result into the canonical shape.
// Precedence is explicit:
//  1. non-mapping inputs are wrapped whole as Output;
//  2. mappings carrying any canonical key pass through (idempotent);
//  3. anything else is treated as the bare worker payload, with a synthesized
//     COMPLETED status when the payload is truthy.
func Normalize(v interface{}) NormalizedResult {
	if r, ok := v.(NormalizedResult); ok {
		return r
	}

	m, ok := asMap(v)
	if !ok {
		return NormalizedResult{Output: v}
	}

	for _, key := range canonicalKeys {
		if _, present := m[key]; present {
			return passThrough(m)
		}
	}

	out, present := m["output"]
	if !present {
		out = m
	}
	r := NormalizedResult{Output: out}
	if truthy(out) {
		s := string(StatusCompleted)
		r.Status = &s
	}
	return r
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case RawJobDetails:
		return m, true
	}
	return nil, false
}

func passThrough(m map[string]interface{}) NormalizedResult {
	r := NormalizedResult{
		DelayTime:     numberField(m, "delayTime"),
		ExecutionTime: numberField(m, "executionTime"),
		ID:            stringField(m, "id"),
		Status:        stringField(m, "status"),
		WorkerID:      stringField(m, "workerId"),
	}
	if out, present := m["output"]; present {
		r.Output = out
	} else {
		// The wrapper itself is the best available payload.
		r.Output = m
	}
	return r
}

func stringField(m map[string]interface{}, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

func numberField(m map[string]interface{}, key string) *float64 {
	switch n := m[key].(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	}
	return nil
}

// truthy mirrors the looseness of the worker payloads: empty collections,
// empty strings, zero numbers, false and nil all count as absent output.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case map[string]interface{}:
		return len(t) > 0
	case []interface{}:
		return len(t) > 0
	}
	return true
}
