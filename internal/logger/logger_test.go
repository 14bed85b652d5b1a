package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithContext(t *testing.T) {
	t.Run("no ids", func(t *testing.T) {
		l := WithContext(context.Background())
		assert.NotContains(t, l.Data, "request_id")
		assert.NotContains(t, l.Data, "delivery_id")
	})

	t.Run("request and delivery ids", func(t *testing.T) {
		ctx := ContextWithRequestID(context.Background(), "req-1")
		ctx = ContextWithDeliveryID(ctx, "dlv-1")

		l := WithContext(ctx)
		assert.Equal(t, "req-1", l.Data["request_id"])
		assert.Equal(t, "dlv-1", l.Data["delivery_id"])
		assert.Equal(t, "req-1", RequestID(ctx))
	})
}

func TestFieldHelpers(t *testing.T) {
	l := New().WithField("a", 1).WithFields(map[string]interface{}{"b": "two"}).WithError(errors.New("boom"))
	assert.Equal(t, 1, l.Data["a"])
	assert.Equal(t, "two", l.Data["b"])
	assert.NotNil(t, l.Data["error"])
}
