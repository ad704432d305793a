package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/skulk-project/skulk/internal/errcode"
	"github.com/skulk-project/skulk/internal/httpserver/deps"
)

// ClipboardGet reads the session clipboard.
func ClipboardGet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := d.Clipboard.Read()
		if err != nil {
			d.Logger.Errorf("failed to read clipboard: %v", err)
			respondCoded(w, http.StatusInternalServerError, errcode.ClipboardRead,
				"failed to read clipboard", map[string]string{"reason": err.Error()})
			return
		}
		respondOK(w, map[string]string{"content": content})
	}
}

// ClipboardSet replaces the session clipboard. A body without a
// content key clears the clipboard; a non-string content is rejected.
func ClipboardSet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&raw)

		content := ""
		if v, ok := raw["content"]; ok {
			s, ok := v.(string)
			if !ok {
				respondCoded(w, http.StatusBadRequest, errcode.Validation,
					"content must be string", nil)
				return
			}
			content = s
		}

		if err := d.Clipboard.Write(content); err != nil {
			d.Logger.Errorf("failed to write clipboard: %v", err)
			respondCoded(w, http.StatusInternalServerError, errcode.ClipboardWrite,
				"failed to write clipboard", map[string]string{"reason": err.Error()})
			return
		}
		respondOK(w, map[string]string{"content": content})
	}
}
