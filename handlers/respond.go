package handlers

import (
	"errors"
	"io"
	"net/http"

	"recipes_backend/logger"
	"recipes_backend/models"

	"github.com/goccy/go-json"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var (
	errNotAnObject  = errors.New("request body must be a JSON object")
	errTrailingData = errors.New("request body has data after the JSON object")
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("Failed to encode response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, models.Message{Message: message})
}

// writeStoreError logs err server-side and answers with a generic 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, message string, err error) {
	logger.FromContext(r.Context()).WithError(err).Error(message)
	writeMessage(w, r, http.StatusInternalServerError, message)
}

// decodeRecipe reads a single JSON object from the request body. An empty
// body is an empty object. Integral numbers decode as int64, all others as
// float64.
func decodeRecipe(w http.ResponseWriter, r *http.Request) (models.Recipe, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Recipe{}, nil
		}
		return nil, err
	}
	var extra interface{}
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errTrailingData
	}
	obj, ok := normalizeNumbers(raw).(map[string]interface{})
	if !ok {
		return nil, errNotAnObject
	}
	return obj, nil
}

// writeDecodeError answers 413 for oversized bodies and 400 otherwise.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).WithError(err).Info("Failed to decode request body")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeMessage(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	writeMessage(w, r, http.StatusBadRequest, "Invalid request payload")
}

func normalizeNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []interface{}:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
