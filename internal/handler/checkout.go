package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/sellium/checkout-service/internal/domain/catalog"
	"github.com/sellium/checkout-service/internal/domain/checkout"
	"github.com/sellium/checkout-service/internal/domain/order"
)

// maxBodySize caps request bodies at 1 MiB.
const maxBodySize = 1 << 20

// BuyItem creates a checkout session for a single item, bypassing the order
// aggregate, and returns the opaque session id.
func (h *Handler) BuyItem(w http.ResponseWriter, r *http.Request) {
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

	req := checkout.ForItem(*it, checkout.CallbackURLs{
		Success: h.absoluteURL(r, "/success"),
		Cancel:  h.absoluteURL(r, fmt.Sprintf("/item/%d", id)),
	})

	sessionID, err := h.gateway.CreateSession(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSessionID(w, sessionID)
}

// CreateOrder creates an order from a JSON body
// {item_ids: [int], discount_id?: int, tax_id?: int}.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateOrder(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.orders.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("order_id", func(e *jx.Encoder) { e.Int64(o.ID) })
		})
	})
}

// OrderCheckout builds and submits a checkout session covering the whole
// order and returns the opaque session id.
func (h *Handler) OrderCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	req := checkout.ForOrder(o, checkout.CallbackURLs{
		Success: h.absoluteURL(r, "/success"),
		Cancel:  h.absoluteURL(r, fmt.Sprintf("/order/%d", id)),
	})

	sessionID, err := h.gateway.CreateSession(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSessionID(w, sessionID)
}

func writeSessionID(w http.ResponseWriter, sessionID string) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("id", func(e *jx.Encoder) { e.Str(sessionID) })
		})
	})
}

// decodeCreateOrder parses the order creation body. A missing item_ids key is
// a validation error; an empty array is valid.
func decodeCreateOrder(r *http.Request) (order.CreateRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return order.CreateRequest{}, validationErr("reading request body")
	}

	var (
		req        order.CreateRequest
		hasItemIDs bool
	)
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "item_ids":
			hasItemIDs = true
			req.ItemIDs = []int64{}
			return d.Arr(func(d *jx.Decoder) error {
				id, err := d.Int64()
				if err != nil {
					return err
				}
				req.ItemIDs = append(req.ItemIDs, id)
				return nil
			})
		case "discount_id":
			id, err := d.Int64()
			if err != nil {
				return err
			}
			req.DiscountID = &id
			return nil
		case "tax_id":
			id, err := d.Int64()
			if err != nil {
				return err
			}
			req.TaxID = &id
			return nil
		default:
			return d.Skip()
		}
	}); err != nil {
		return order.CreateRequest{}, validationErr("malformed JSON body")
	}

	if !hasItemIDs {
		return order.CreateRequest{}, validationErr("item_ids is required")
	}
	return req, nil
}

// absoluteURL builds a buyer-facing absolute URL for the given path, using
// the configured public base URL or falling back to the request host.
func (h *Handler) absoluteURL(r *http.Request, path string) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL + path
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}
