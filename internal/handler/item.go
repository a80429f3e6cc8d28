package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/sellium/checkout-service/internal/domain/catalog"
)

// ListItems returns the full catalog.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		writeError(w, r, errors.Wrap(err, "list items"))
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, it := range items {
				encodeItem(e, it)
			}
		})
	})
}

// GetItem returns the rendering context for the item page: the item itself,
// its display price, and the publishable key for its currency.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	it, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			notFound(w, "item not found")
			return
		}
		writeError(w, r, errors.Wrapf(err, "get item %d", id))
		return
	}

	pubKey, err := h.gateway.PublishableKey(it.Currency)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("item", func(e *jx.Encoder) { encodeItem(e, *it) })
			e.Field("publishable_key", func(e *jx.Encoder) { e.Str(pubKey) })
		})
	})
}

func encodeItem(e *jx.Encoder, it catalog.Item) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(it.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(it.Name) })
		e.Field("description", func(e *jx.Encoder) { e.Str(it.Description) })
		e.Field("price", func(e *jx.Encoder) { e.Int64(it.Price) })
		e.Field("display_price", func(e *jx.Encoder) { e.Str(it.DisplayPrice()) })
		e.Field("currency", func(e *jx.Encoder) { e.Str(string(it.Currency)) })
	})
}
