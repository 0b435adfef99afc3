package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	t.Run("stable across map ordering", func(t *testing.T) {
		a := Key("translate", map[string]interface{}{
			"source_language": "eng",
			"target_language": "lug",
			"text":            "hello",
		})
		b := Key("translate", map[string]interface{}{
			"text":            "hello",
			"target_language": "lug",
			"source_language": "eng",
		})
		assert.Equal(t, a, b)
	})

	t.Run("distinct payloads hash differently", func(t *testing.T) {
		a := Key("translate", map[string]interface{}{"text": "hello"})
		b := Key("translate", map[string]interface{}{"text": "goodbye"})
		assert.NotEqual(t, a, b)
	})

	t.Run("task name is part of the key", func(t *testing.T) {
		payload := map[string]interface{}{"text": "hello"}
		assert.NotEqual(t, Key("translate", payload), Key("tts", payload))
	})

	t.Run("carries the namespace prefix", func(t *testing.T) {
		key := Key("translate", nil)
		assert.True(t, strings.HasPrefix(key, resultKeyPrefix))
	})
}
