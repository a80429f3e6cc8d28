package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/sellium/checkout-service/internal/domain/catalog"
)

// CreateItem registers a new catalog item.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var (
		it  catalog.Item
		cur string
	)
	if err := decodeObj(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			it.Name, err = d.Str()
		case "description":
			it.Description, err = d.Str()
		case "price":
			it.Price, err = d.Int64()
		case "currency":
			cur, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		writeError(w, r, err)
		return
	}

	if it.Name == "" {
		writeError(w, r, validationErr("name is required"))
		return
	}
	if it.Price < 0 {
		writeError(w, r, validationErr("price must be non-negative"))
		return
	}
	currency, err := catalog.ParseCurrency(cur)
	if err != nil {
		writeError(w, r, validationErr(err.Error()))
		return
	}
	it.Currency = currency

	if err := h.items.Create(r.Context(), &it); err != nil {
		writeError(w, r, errors.Wrap(err, "create item"))
		return
	}
	writeCreatedID(w, it.ID)
}

// CreateDiscount registers a provider coupon wrapper.
func (h *Handler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	d, err := decodeProviderRef(r, "discount")
	if err != nil {
		writeError(w, r, err)
		return
	}

	disc := &catalog.Discount{ProviderRef: d.ref, Name: d.name}
	if err := h.discounts.Create(r.Context(), disc); err != nil {
		writeError(w, r, errors.Wrap(err, "create discount"))
		return
	}
	writeCreatedID(w, disc.ID)
}

// CreateTax registers a provider tax-rate wrapper.
func (h *Handler) CreateTax(w http.ResponseWriter, r *http.Request) {
	d, err := decodeProviderRef(r, "tax")
	if err != nil {
		writeError(w, r, err)
		return
	}

	tax := &catalog.Tax{ProviderRef: d.ref, Name: d.name}
	if err := h.taxes.Create(r.Context(), tax); err != nil {
		writeError(w, r, errors.Wrap(err, "create tax"))
		return
	}
	writeCreatedID(w, tax.ID)
}

// DeleteDiscount removes a discount; orders referencing it get the reference
// nulled by the schema.
func (h *Handler) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.discounts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrDiscountNotFound) {
			notFound(w, "discount not found")
			return
		}
		writeError(w, r, errors.Wrapf(err, "delete discount %d", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTax removes a tax rate, same policy as DeleteDiscount.
func (h *Handler) DeleteTax(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.taxes.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrTaxNotFound) {
			notFound(w, "tax not found")
			return
		}
		writeError(w, r, errors.Wrapf(err, "delete tax %d", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type providerRefBody struct {
	ref  string
	name string
}

func decodeProviderRef(r *http.Request, defaultName string) (providerRefBody, error) {
	out := providerRefBody{name: defaultName}
	if err := decodeObj(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "provider_ref":
			out.ref, err = d.Str()
		case "name":
			out.name, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return providerRefBody{}, err
	}
	if out.ref == "" {
		return providerRefBody{}, validationErr("provider_ref is required")
	}
	return out, nil
}

func decodeObj(r *http.Request, f func(d *jx.Decoder, key string) error) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return validationErr("reading request body")
	}
	if err := jx.DecodeBytes(body).Obj(f); err != nil {
		return validationErr("malformed JSON body")
	}
	return nil
}

func writeCreatedID(w http.ResponseWriter, id int64) {
	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("id", func(e *jx.Encoder) { e.Int64(id) })
		})
	})
}
