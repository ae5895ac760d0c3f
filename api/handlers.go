package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kvcrud/record"
	"kvcrud/store"
)

const defaultPageSize = 20

type ErrResponse struct {
	HTTPStatusCode int
	Message        string
}

type StatsResponse struct {
	Count int `json:"count"`
}

func (a *Api) SaveRecordHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.decodeRecord(w, r)
	if !ok {
		return
	}
	rec = rec.Normalize()

	a.mu.Lock()
	err := a.Store.Save(rec)
	a.mu.Unlock()
	if err != nil {
		a.storeError(w, "save", rec.ID, err)
		return
	}

	a.Logger.Info("saved record", "id", rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (a *Api) ListRecordsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	number, err := intParam(q.Get("page"), 0)
	if err != nil {
		a.badRequest(w, fmt.Sprintf("page: %v", err))
		return
	}
	size, err := intParam(q.Get("size"), defaultPageSize)
	if err != nil {
		a.badRequest(w, fmt.Sprintf("size: %v", err))
		return
	}
	sort, err := store.ParseSort(q.Get("sort"))
	if err != nil {
		a.badRequest(w, fmt.Sprintf("sort: %v", err))
		return
	}

	page := store.NewPage(number, size)
	if q.Has("offset") {
		offset, err := intParam(q.Get("offset"), 0)
		if err != nil {
			a.badRequest(w, fmt.Sprintf("offset: %v", err))
			return
		}
		page = store.NewPageAt(offset, size)
	}

	a.mu.Lock()
	recs, err := a.Store.FindAllWithPageAndSort(page, sort)
	a.mu.Unlock()
	if err != nil {
		a.storeError(w, "list", "", err)
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

func (a *Api) GetRecordHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recordID")

	a.mu.Lock()
	rec, err := a.Store.FindByID(id)
	a.mu.Unlock()
	if err != nil {
		a.storeError(w, "find", id, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// UpdateRecordHandler stores the body under the id from the path, creating
// the record if it does not exist yet.
func (a *Api) UpdateRecordHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recordID")

	rec, ok := a.decodeRecord(w, r)
	if !ok {
		return
	}
	rec.ID = id
	rec = rec.Normalize()

	a.mu.Lock()
	err := a.Store.Update(rec)
	a.mu.Unlock()
	if err != nil {
		a.storeError(w, "update", id, err)
		return
	}

	a.Logger.Info("updated record", "id", id)
	writeJSON(w, http.StatusOK, rec)
}

func (a *Api) DeleteRecordHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recordID")

	a.mu.Lock()
	err := a.Store.RemoveByID(id)
	a.mu.Unlock()
	if err != nil {
		a.storeError(w, "remove", id, err)
		return
	}

	a.Logger.Info("removed record", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) StatsHandler(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	count, err := a.Store.Count()
	a.mu.Unlock()
	if err != nil {
		a.storeError(w, "count", "", err)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{Count: count})
}

func (a *Api) decodeRecord(w http.ResponseWriter, r *http.Request) (record.Record, bool) {
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()

	var rec record.Record
	if err := d.Decode(&rec); err != nil {
		a.badRequest(w, fmt.Sprintf("error unmarshalling body: %v", err))
		return rec, false
	}

	return rec, true
}

func (a *Api) badRequest(w http.ResponseWriter, msg string) {
	a.Logger.Warn("bad request", "error", msg)
	writeJSON(w, http.StatusBadRequest, ErrResponse{
		HTTPStatusCode: http.StatusBadRequest,
		Message:        msg,
	})
}

func (a *Api) storeError(w http.ResponseWriter, op, id string, err error) {
	status := http.StatusInternalServerError
	if store.IsNotFound(err) {
		status = http.StatusNotFound
		a.Logger.Debug("record not found", "op", op, "id", id)
	} else {
		a.Logger.Error("store failure", "op", op, "id", id, "error", err)
	}

	writeJSON(w, status, ErrResponse{
		HTTPStatusCode: status,
		Message:        err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative, got %d", n)
	}
	return n, nil
}
