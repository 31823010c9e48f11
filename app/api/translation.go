package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rbhz/trs/app/cache"
	"github.com/rbhz/trs/app/dictionary"
	"github.com/rbhz/trs/app/service"
	"github.com/rs/zerolog/log"
)

// TranslateRequest is the body of translate request
type TranslateRequest struct {
	Text string `json:"text"`
}

// TranslateResponse is the body of translate response
type TranslateResponse struct {
	Translation string `json:"translation"`
}

// translationService implements methods for translation API
type translationService struct {
	translator Translator
}

// GetWord returns dictionary entry for a single word
func (t translationService) GetWord(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	entry, err := t.translator.LookupWord(r.Context(), word)
	if err != nil {
		if errors.Is(err, dictionary.ErrNotFound) {
			writeText(w, http.StatusNotFound, "word not found")
			return
		}
		log.Error().Err(err).Str("word", word).Msg("failed to lookup word")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, entry)
}

// Translate translates word or sentence from request body
func (t translationService) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	translation, err := t.translator.Translate(r.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoInput):
			writeText(w, http.StatusBadRequest, "text must not be empty")
		case errors.Is(err, dictionary.ErrNotFound):
			writeText(w, http.StatusNotFound, "word not found")
		case errors.Is(err, service.ErrMissingAPIKey):
			writeText(w, http.StatusServiceUnavailable, "translation is not configured")
		default:
			log.Error().Err(err).Msg("failed to translate")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, TranslateResponse{Translation: translation})
}

// GetLast returns last translation as plain text
func (t translationService) GetLast(w http.ResponseWriter, r *http.Request) {
	text, err := t.translator.LastTranslation()
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			writeText(w, http.StatusNotFound, "no translation history")
			return
		}
		log.Error().Err(err).Msg("failed to load last translation")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(text)); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// GetHistory returns newest saved translations
func (t translationService) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeText(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	records, err := t.translator.History(limit)
	if err != nil {
		if errors.Is(err, service.ErrHistoryUnsupported) {
			writeText(w, http.StatusNotImplemented, "history is not supported")
			return
		}
		log.Error().Err(err).Msg("failed to get history")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, records)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.WriteHeader(status)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	response, jerr := json.Marshal(v)
	if jerr != nil {
		log.Error().Err(jerr).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(response); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
