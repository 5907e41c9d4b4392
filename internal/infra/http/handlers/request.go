package handlers

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/sclayai/proposal-intake/internal/usecase"
)

const maxFormMemory = 1 << 20

// draftFromRequest builds a form draft from a url-encoded, multipart or JSON
// body. Repeated fields and JSON arrays become multi-valued fields.
func draftFromRequest(r *http.Request) (*usecase.Draft, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		return draftFromJSON(r)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
	}
	return usecase.DraftFromValues(r.PostForm), nil
}

func draftFromJSON(r *http.Request) (*usecase.Draft, error) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode JSON body: %w", err)
	}

	d := usecase.NewDraft()
	for field, raw := range body {
		switch v := raw.(type) {
		case []any:
			for _, item := range v {
				if s, ok := scalar(item); ok {
					d.Add(field, s)
				}
			}
		default:
			if s, ok := scalar(v); ok {
				d.Set(field, s)
			}
		}
	}
	return d, nil
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// wantsJSON is true for API calls and clients that ask for JSON.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/json"
}

func queryInt(r *http.Request, key string, fallback int) int {
	if n, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil {
		return n
	}
	return fallback
}
