package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		ctx.SetStatusCode(http.StatusInternalServerError)
		return
	}
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}, meta interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, meta))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.respondJSON(ctx, status, transport.NewError(code, err.Error(), nil))
}

// respondOutcome writes a façade outcome. err is only set when the request context ended
// before the operation started.
func (h baseHandler) respondOutcome(ctx *fasthttp.RequestCtx, outcome domain.Outcome, err error) {
	if err != nil {
		h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("TIMEOUT", "operation was not started", nil))
		return
	}
	status, code := mapOutcome(outcome)
	if outcome.OK() {
		h.respondSuccess(ctx, status, outcome, nil)
		return
	}
	h.respondJSON(ctx, status, transport.NewError(code, outcome.Message, outcome))
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.IsDomainError(err, domain.ErrCodeInvalidStatus):
		return http.StatusBadRequest, string(domain.ErrCodeInvalidStatus)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeStorage):
		return http.StatusInternalServerError, string(domain.ErrCodeStorage)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}

func mapOutcome(o domain.Outcome) (int, string) {
	switch o.Kind {
	case domain.OutcomeAdded, domain.OutcomeSeeded:
		return http.StatusCreated, ""
	case domain.OutcomeMoved, domain.OutcomeCompleted, domain.OutcomeDeleted, domain.OutcomeUnchanged:
		return http.StatusOK, ""
	case domain.OutcomeValidationError:
		return http.StatusBadRequest, string(domain.ErrCodeInvalid)
	case domain.OutcomeInvalidStatus:
		return http.StatusBadRequest, string(domain.ErrCodeInvalidStatus)
	case domain.OutcomeNotFound:
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.OutcomeStorageError:
		return http.StatusInternalServerError, string(domain.ErrCodeStorage)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}

func taskID(ctx *fasthttp.RequestCtx) (int, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseUint(value string, fallback uint64) uint64 {
	if v, err := strconv.ParseUint(value, 10, 64); err == nil {
		return v
	}
	return fallback
}
