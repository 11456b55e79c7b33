package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/services"
	"github.com/fastygo/taskboard/pkg/httpcontext"
	boardUC "github.com/fastygo/taskboard/usecase/board"
)

// FeedReader is the read side of the outcome feed.
type FeedReader interface {
	Revision() uint64
	Seq() uint64
	Since(seq uint64) []services.FeedEntry
}

type BoardHandler struct {
	baseHandler
	uc   *boardUC.UseCase
	feed FeedReader
}

func NewBoardHandler(uc *boardUC.UseCase, feed FeedReader, adapter *httpcontext.Adapter, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		feed:        feed,
	}
}

// @Summary Board projection
// @Tags board
// @Router /api/v1/board [get]
func (h *BoardHandler) GetBoard(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	filter, err := domain.ParseTaskFilter(
		string(args.Peek("search")),
		string(args.Peek("priority")),
		string(args.Peek("category")),
	)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	// Read the feed position first: a mutation landing in between only makes the
	// renderer fetch once more.
	meta := transport.BoardMeta{Revision: h.feed.Revision(), Seq: h.feed.Seq()}
	board, err := h.uc.Board(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, board, meta)
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *BoardHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.Tasks(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks, nil)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *BoardHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	outcome, err := h.uc.AddTask(stdCtx, req.Input())
	h.respondOutcome(ctx, outcome, err)
}

// @Summary Advance task one column
// @Tags tasks
// @Router /api/v1/tasks/{id}/advance [post]
func (h *BoardHandler) AdvanceTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.requireID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	outcome, err := h.uc.Advance(stdCtx, id)
	h.respondOutcome(ctx, outcome, err)
}

// @Summary Move task to a column
// @Tags tasks
// @Router /api/v1/tasks/{id}/status [put]
func (h *BoardHandler) MoveTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.requireID(ctx)
	if !ok {
		return
	}
	var req transport.MoveRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	outcome, err := h.uc.MoveToColumn(stdCtx, id, req.Status)
	h.respondOutcome(ctx, outcome, err)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *BoardHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.requireID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	outcome, err := h.uc.DeleteTask(stdCtx, id)
	h.respondOutcome(ctx, outcome, err)
}

// @Summary Seed sample tasks into an empty board
// @Tags board
// @Router /api/v1/seed [post]
func (h *BoardHandler) Seed(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	outcome, err := h.uc.SeedSampleData(stdCtx)
	h.respondOutcome(ctx, outcome, err)
}

// @Summary Outcomes since a feed position
// @Tags board
// @Router /api/v1/events [get]
func (h *BoardHandler) Events(ctx *fasthttp.RequestCtx) {
	since := parseUint(string(ctx.QueryArgs().Peek("since")), 0)
	meta := transport.BoardMeta{Revision: h.feed.Revision(), Seq: h.feed.Seq()}
	h.respondSuccess(ctx, http.StatusOK, h.feed.Since(since), meta)
}

func (h *BoardHandler) requireID(ctx *fasthttp.RequestCtx) (int, bool) {
	id, ok := taskID(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid task id", nil))
	}
	return id, ok
}
