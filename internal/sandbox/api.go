package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"catalogadmin/internal/logging"
	"catalogadmin/internal/store"
	"catalogadmin/internal/types"
	"catalogadmin/internal/validate"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
	maxBodyBytes   = 1 << 20
)

type API struct {
	Version string
	Catalog store.CatalogStore
	Logger  logging.Logger
	Now     func() time.Time
}

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", a.Health)
	for _, ep := range a.endpoints() {
		mux.Handle(ep.path(), ep)
		mux.Handle(ep.path()+"/", ep)
	}
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"version": a.Version,
		"pid":     os.Getpid(),
	})
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

type routedEndpoint interface {
	http.Handler
	path() string
}

func (a *API) endpoints() []routedEndpoint {
	return []routedEndpoint{
		&endpoint[types.Collection]{
			api:      a,
			res:      types.ResourceCollections,
			matches:  matchCollection,
			stamp:    stampCollection,
			validate: validate.Collection,
			check:    a.checkCollectionDelete,
		},
		&endpoint[types.Category]{
			api:      a,
			res:      types.ResourceCategories,
			matches:  matchCategory,
			stamp:    stampCategory,
			validate: validate.Category,
			refs:     a.checkCategoryRefs,
		},
		&endpoint[types.Product]{
			api:      a,
			res:      types.ResourceProducts,
			matches:  matchProduct,
			stamp:    stampProduct,
			validate: validate.Product,
			refs:     a.checkProductRefs,
		},
		&endpoint[types.VendorSKU]{
			api:      a,
			res:      types.ResourceVendorSKUs,
			matches:  matchVendorSKU,
			stamp:    stampVendorSKU,
			validate: validate.VendorSKU,
			refs:     a.checkVendorSKURefs,
		},
	}
}

// endpoint serves list, get, create, update and delete for one resource.
type endpoint[T any] struct {
	api      *API
	res      types.Resource
	matches  func(rec *T, filters url.Values) bool
	stamp    func(rec *T, id types.ID, created *time.Time, now time.Time)
	validate func(rec *T) error
	refs     func(ctx context.Context, rec *T) error
	check    func(ctx context.Context, id types.ID) error
}

func (e *endpoint[T]) path() string {
	return e.res.Endpoint()
}

func (e *endpoint[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, e.res.Endpoint()), "/")
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			e.list(w, r)
		case http.MethodPost:
			e.create(w, r)
		default:
			methodNotAllowed(w)
		}
		return
	}
	if strings.Contains(rest, "/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	id := types.ID(rest)
	switch r.Method {
	case http.MethodGet:
		e.get(w, r, id)
	case http.MethodPut, http.MethodPatch:
		e.update(w, r, id)
	case http.MethodDelete:
		e.delete(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

type listResponse struct {
	Data any            `json:"data"`
	Meta types.PageMeta `json:"meta"`
}

func (e *endpoint[T]) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := parsePositive(query.Get("page"), 1)
	perPage := parsePositive(query.Get("per_page"), defaultPerPage)
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	records, err := store.ListRecords(r.Context(), e.api.Catalog, e.res, func(rec *T) bool {
		return e.matches(rec, query)
	})
	if err != nil {
		writeServiceError(w, internalError("list "+e.res.Name, err))
		return
	}
	total := len(records)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	// A page past the end is empty and reports the last page, so
	// current_page never exceeds total_pages.
	start, end := total, total
	if page <= totalPages {
		start = (page - 1) * perPage
		end = min(start+perPage, total)
	} else {
		page = totalPages
	}
	writeJSON(w, http.StatusOK, listResponse{
		Data: records[start:end],
		Meta: types.PageMeta{CurrentPage: page, TotalPages: totalPages, TotalDataCount: total},
	})
}

func (e *endpoint[T]) get(w http.ResponseWriter, r *http.Request, id types.ID) {
	record, err := e.load(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": record})
}

func (e *endpoint[T]) create(w http.ResponseWriter, r *http.Request) {
	payload, err := e.decodePayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	record := new(T)
	if err := json.Unmarshal(payload, record); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + e.res.Singular})
		return
	}
	if err := e.checkRecord(r.Context(), record); err != nil {
		writeServiceError(w, err)
		return
	}
	now := e.api.now()
	raw, err := e.api.Catalog.Insert(r.Context(), e.res, func(id types.ID) (any, error) {
		e.stamp(record, id, &now, now)
		return record, nil
	})
	if err != nil {
		writeServiceError(w, internalError("create "+e.res.Singular, err))
		return
	}
	writeRaw(w, http.StatusCreated, raw)
}

func (e *endpoint[T]) update(w http.ResponseWriter, r *http.Request, id types.ID) {
	payload, err := e.decodePayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var checkErr error
	raw, err := e.api.Catalog.Replace(r.Context(), e.res, id, func(current []byte) (any, error) {
		record := new(T)
		if err := json.Unmarshal(current, record); err != nil {
			return nil, err
		}
		created := createdAt(record)
		if err := json.Unmarshal(payload, record); err != nil {
			checkErr = invalidError("invalid " + e.res.Singular)
			return nil, checkErr
		}
		if err := e.checkRecord(r.Context(), record); err != nil {
			checkErr = err
			return nil, err
		}
		e.stamp(record, id, created, e.api.now())
		return record, nil
	})
	switch {
	case checkErr != nil:
		writeServiceError(w, checkErr)
	case errors.Is(err, store.ErrNotFound):
		writeServiceError(w, notFoundError(e.res.Singular+" not found", nil))
	case err != nil:
		writeServiceError(w, internalError("update "+e.res.Singular, err))
	default:
		writeRaw(w, http.StatusOK, raw)
	}
}

func (e *endpoint[T]) delete(w http.ResponseWriter, r *http.Request, id types.ID) {
	if _, err := e.load(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	if e.check != nil {
		if err := e.check(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	if err := e.api.Catalog.Delete(r.Context(), e.res, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeServiceError(w, notFoundError(e.res.Singular+" not found", nil))
			return
		}
		writeServiceError(w, internalError("delete "+e.res.Singular, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (e *endpoint[T]) load(ctx context.Context, id types.ID) (*T, error) {
	record, err := store.GetRecord[T](ctx, e.api.Catalog, e.res, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundError(e.res.Singular+" not found", nil)
	}
	if err != nil {
		return nil, internalError("load "+e.res.Singular, err)
	}
	return record, nil
}

// decodePayload unwraps the {"<singular>": {...}} request body.
func (e *endpoint[T]) decodePayload(r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.New("unable to read body")
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, errors.New("invalid json body")
	}
	payload, ok := wrapper[e.res.Singular]
	if !ok || len(payload) == 0 || string(payload) == "null" {
		return nil, errors.New("missing " + e.res.Singular + " payload")
	}
	return payload, nil
}

func (e *endpoint[T]) checkRecord(ctx context.Context, record *T) error {
	if err := e.validate(record); err != nil {
		if verr, ok := validate.AsValidationError(err); ok {
			return invalidError(validationMessages(verr)...)
		}
		return invalidError(err.Error())
	}
	if e.refs != nil {
		return e.refs(ctx, record)
	}
	return nil
}

func validationMessages(verr *validate.ValidationError) []string {
	keys := make([]string, 0, len(verr.Fields))
	for key := range verr.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, key+" "+verr.Fields[key])
	}
	return out
}

func writeRaw(w http.ResponseWriter, status int, raw []byte) {
	writeJSON(w, status, map[string]json.RawMessage{"data": raw})
}

func parsePositive(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func createdAt(record any) *time.Time {
	switch r := record.(type) {
	case *types.Collection:
		return r.CreatedAt
	case *types.Category:
		return r.CreatedAt
	case *types.Product:
		return r.CreatedAt
	case *types.VendorSKU:
		return r.CreatedAt
	default:
		return nil
	}
}
