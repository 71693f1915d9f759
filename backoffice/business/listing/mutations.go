package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"encore.dev/rlog"

	"encore.app/backoffice/apperr"
	"encore.app/backoffice/domain"
	"encore.app/backoffice/model"
	"encore.app/backoffice/mutate"
)

func (l *listing[T, D]) Create(ctx context.Context, body json.RawMessage) (*model.ItemChange, error) {
	if l.cfg.ReadOnly {
		return nil, ErrReadOnly
	}
	if !l.cfg.CanCreate {
		return nil, ErrCreateUnsupported
	}
	draft, err := decodeDraft[D](body)
	if err != nil {
		return nil, err
	}

	created, err := l.mutator.Create(ctx, draft)
	return l.change("create", created, err)
}

func (l *listing[T, D]) Update(ctx context.Context, id int64, body json.RawMessage) (*model.ItemChange, error) {
	if l.cfg.ReadOnly {
		return nil, ErrReadOnly
	}
	draft, err := decodeDraft[D](body)
	if err != nil {
		return nil, err
	}

	updated, err := l.mutator.Update(ctx, id, draft)
	return l.change("update", updated, err)
}

func (l *listing[T, D]) Remove(ctx context.Context, id int64) (*model.ViewPage, error) {
	if l.cfg.ReadOnly {
		return nil, ErrReadOnly
	}
	if err := l.mutator.Remove(ctx, id); err != nil {
		return nil, err
	}
	l.refresh()
	return l.View()
}

// MoveStock imports or exports stock. The upstream answers with the updated
// stock row, which replaces the local one. Transactions are invalidated too.
func (l *listing[T, D]) MoveStock(ctx context.Context, body json.RawMessage) (*model.ItemChange, error) {
	records, ok := any(l.view.Items()).([]model.InventoryRecord)
	if !ok {
		return nil, ErrNoStockMovement
	}
	draft, err := decodeDraft[model.StockMovementDraft](body)
	if err != nil {
		return nil, err
	}
	// op doubles as a metric label, so it only takes known values
	op := "move_stock"
	if draft.Type == model.MovementImport || draft.Type == model.MovementExport {
		op = string(draft.Type)
	}
	if err := domain.CheckStockMovement(records, draft); err != nil {
		l.cfg.Recorder.Mutation(string(l.resource), op, "rejected")
		l.view.SetNotice(model.NoticeError, apperr.UserMessage(err))
		return nil, err
	}

	item, err := l.mutator.Do(ctx, mutate.Action{
		Op:    op,
		Draft: draft,
		Call: func(ctx context.Context) (any, error) {
			return l.client.Action(ctx, op, draft.Query(), draft.Payload())
		},
		Notice:      "stock " + op + "ed",
		Invalidates: []string{string(model.ResourceTransactions)},
	})
	return l.change(op, item, err)
}

func (l *listing[T, D]) change(op string, item T, err error) (*model.ItemChange, error) {
	if errors.Is(err, mutate.ErrUnconfirmed) {
		// the write went through, the reload already scheduled will show it
		rlog.Warn("write accepted without a readable record", "resource", l.resource, "op", op)
		page, viewErr := l.View()
		if viewErr != nil {
			return nil, viewErr
		}
		return &model.ItemChange{View: *page}, nil
	}
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode %s item: %w", l.resource, err)
	}
	l.refresh()
	page, err := l.View()
	if err != nil {
		return nil, err
	}
	return &model.ItemChange{Item: encoded, View: *page}, nil
}

func (l *listing[T, D]) refresh() {
	if l.cfg.RefreshAfterWrite {
		l.scheduleReload()
	}
}

func decodeDraft[D any](body json.RawMessage) (D, error) {
	var draft D
	if len(body) == 0 {
		return draft, apperr.Invalid("item", "required", "item is required")
	}
	if err := json.Unmarshal(body, &draft); err != nil {
		return draft, apperr.Invalid("item", "json", "item must be a JSON object")
	}
	return draft, nil
}
