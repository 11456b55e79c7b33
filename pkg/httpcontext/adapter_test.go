package httpcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/taskboard/pkg/logger"
)

func TestAdapter_AttachPropagatesRequestID(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("X-Request-ID", "req-42")
	ctx.Request.Header.SetUserAgent("board-ui")

	stdCtx, cancel := NewAdapter(time.Second).Attach(&ctx)
	defer cancel()

	assert.Equal(t, "req-42", appLogger.RequestID(stdCtx))
	assert.Equal(t, "req-42", string(ctx.Response.Header.Peek("X-Request-ID")))
	assert.Equal(t, "board-ui", stdCtx.Value(KeyUserAgent))

	_, hasDeadline := stdCtx.Deadline()
	assert.True(t, hasDeadline)
}

func TestAdapter_AttachGeneratesRequestID(t *testing.T) {
	var ctx fasthttp.RequestCtx

	stdCtx, cancel := NewAdapter(0).Attach(&ctx)
	defer cancel()

	id := appLogger.RequestID(stdCtx)
	assert.Len(t, id, 36)
}
