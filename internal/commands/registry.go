package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
)

// Handler runs one named call with its raw JSON input.
type Handler func(ctx context.Context, input json.RawMessage) (any, error)

// Response is the outcome of a dispatched call. Exactly one of Data or Error
// is meaningful; Data may be nil for calls without a result.
type Response struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Registry maps call names to handlers.
type Registry struct {
	handlers map[string]Handler
	logger   *slog.Logger
}

// NewRegistry registers every call of s under its name.
func NewRegistry(s *Surface, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{handlers: make(map[string]Handler), logger: logger}

	// Boards
	r.Register("listBoards", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return s.ListBoards(ctx)
	})
	r.Register("getBoard", withInput(func(ctx context.Context, in IDInput) (any, error) {
		return s.GetBoard(ctx, in.ID)
	}))
	r.Register("createBoard", withInput(func(ctx context.Context, in CreateBoardInput) (any, error) {
		return s.CreateBoard(ctx, in)
	}))
	r.Register("updateBoard", withInput(func(ctx context.Context, in UpdateBoardInput) (any, error) {
		return s.UpdateBoard(ctx, in)
	}))
	r.Register("deleteBoard", withInput(func(ctx context.Context, in IDInput) (any, error) {
		return nil, s.DeleteBoard(ctx, in.ID)
	}))
	r.Register("markBoardOpened", withInput(func(ctx context.Context, in IDInput) (any, error) {
		return nil, s.MarkBoardOpened(ctx, in.ID)
	}))

	// Columns
	r.Register("listColumns", withInput(func(ctx context.Context, in BoardIDInput) (any, error) {
		return s.ListColumns(ctx, in.BoardID)
	}))
	r.Register("getColumn", withInput(func(ctx context.Context, in IDInput) (any, error) {
		return s.GetColumn(ctx, in.ID)
	}))
	r.Register("createColumn", withInput(func(ctx context.Context, in CreateColumnInput) (any, error) {
		return s.CreateColumn(ctx, in)
	}))
	r.Register("updateColumn", withInput(func(ctx context.Context, in UpdateColumnInput) (any, error) {
		return s.UpdateColumn(ctx, in)
	}))
	r.Register("deleteColumn", withInput(func(ctx context.Context, in IDInput) (any, error) {
		return nil, s.DeleteColumn(ctx, in.ID)
	}))
	r.Register("reorderColumns", withInput(func(ctx context.Context, in OrdersInput) (any, error) {
		return nil, s.ReorderColumns(ctx, in.Updates)
	}))
	r.Register("rebalanceColumns", withInput(func(ctx context.Context, in BoardIDInput) (any, error) {
		return s.RebalanceColumns(ctx, in.BoardID)
	}))

	// Cards
	r.Register("listCardsForBoard", withInput(func(ctx context.Context, in BoardIDInput) (any, error) {
		return s.ListCardsForBoard(ctx, in.BoardID)
	}))
	r.Register("listCardsForColumn", withInput(func(ctx context.Context, in ColumnIDInput) (any, error) {
		return s.ListCardsForColumn(ctx, in.ColumnID)
	}))
	r.Register("getCard", withInput(func(ctx context.Context, in IDInput) (any, error) {
		return s.GetCard(ctx, in.ID)
	}))
	r.Register("createCard", withInput(func(ctx context.Context, in CreateCardInput) (any, error) {
		return s.CreateCard(ctx, in)
	}))
	r.Register("updateCard", withInput(func(ctx context.Context, in UpdateCardInput) (any, error) {
		return s.UpdateCard(ctx, in)
	}))
	r.Register("deleteCard", withInput(func(ctx context.Context, in IDInput) (any, error) {
		return nil, s.DeleteCard(ctx, in.ID)
	}))
	r.Register("moveCard", withInput(func(ctx context.Context, in MoveCardInput) (any, error) {
		return s.MoveCard(ctx, in)
	}))
	r.Register("batchUpdateCardOrders", withInput(func(ctx context.Context, in OrdersInput) (any, error) {
		return nil, s.BatchUpdateCardOrders(ctx, in.Updates)
	}))
	r.Register("rebalanceCards", withInput(func(ctx context.Context, in ColumnIDInput) (any, error) {
		return s.RebalanceCards(ctx, in.ColumnID)
	}))

	// Maintenance
	r.Register("createBackup", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return s.CreateBackup(ctx)
	})
	r.Register("listBackups", func(_ context.Context, _ json.RawMessage) (any, error) {
		return s.ListBackups()
	})
	r.Register("cleanupOldBackups", withInput(func(_ context.Context, in CleanupInput) (any, error) {
		return s.CleanupOldBackups(in.KeepCount)
	}))
	r.Register("checkIntegrity", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return s.CheckIntegrity(ctx)
	})
	r.Register("listMigrations", func(ctx context.Context, _ json.RawMessage) (any, error) {
		return s.ListMigrations(ctx)
	})

	return r
}

// Register adds or replaces the handler for name.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[name] = h
}

// Names returns the registered call names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs the named call and returns its typed result.
func (r *Registry) Call(ctx context.Context, name string, input json.RawMessage) (any, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return h(ctx, input)
}

// Dispatch runs the named call and folds any error into the response as a
// human-readable message.
func (r *Registry) Dispatch(ctx context.Context, name string, input json.RawMessage) Response {
	data, err := r.Call(ctx, name, input)
	if err != nil {
		r.logger.Debug("Command failed", "command", name, "error", err)
		return Response{OK: false, Error: err.Error()}
	}
	return Response{OK: true, Data: data}
}

// withInput adapts a typed handler to a Handler by decoding its input.
// Absent input decodes to the zero value; unknown fields are rejected.
func withInput[T any](fn func(context.Context, T) (any, error)) Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var in T
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			dec := json.NewDecoder(bytes.NewReader(trimmed))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&in); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
		}
		return fn(ctx, in)
	}
}
