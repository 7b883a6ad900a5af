package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"trainsheet/pkg/config"
	"trainsheet/pkg/program"
	"trainsheet/pkg/sheets"
)

const defaultConfigFile = "trainsheet.toml"

// newTable is a package var so tests can substitute a mock.
var newTable = func(cfg program.Config) (sheets.Table, error) {
	configFile := os.Getenv("TRAINSHEET_CONFIG")
	if configFile == "" {
		configFile = defaultConfigFile
	}
	store, err := config.NewDatastore(configFile)
	if err != nil {
		return nil, err
	}
	return sheets.NewSheetClient(
		store.Store.CredentialsFile,
		store.Store.SpreadsheetID,
		cfg.TableName,
	)
}

type weeksRequest struct {
	Weeks int `json:"weeks"`
}

type weeksResponse struct {
	Program string `json:"program"`
	Weeks   int    `json:"weeks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// postInit lays out a fresh program table with the requested number of weeks.
func postInit(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	cfg, err := program.Lookup(kind)
	if err != nil {
		sendError(w, http.StatusNotFound, err)
		return
	}
	weeks, err := decodeWeeks(r)
	if err != nil {
		sendError(w, http.StatusBadRequest, err)
		return
	}

	table, err := newTable(cfg)
	if err != nil {
		sendError(w, http.StatusInternalServerError, err)
		return
	}
	if err := initProgram(table, weeks); err != nil {
		sendError(w, http.StatusInternalServerError, err)
		return
	}

	log.Infof("Initialized %s with %d weeks", cfg.TableName, weeks)
	sendJSON(w, http.StatusOK, weeksResponse{Program: kind, Weeks: weeks})
}

// postAddWeeks appends weeks to an existing program table. The current week
// count is re-derived from the table's rows on every call.
func postAddWeeks(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	cfg, err := program.Lookup(kind)
	if err != nil {
		sendError(w, http.StatusNotFound, err)
		return
	}
	weeks, err := decodeWeeks(r)
	if err != nil {
		sendError(w, http.StatusBadRequest, err)
		return
	}

	table, err := newTable(cfg)
	if err != nil {
		sendError(w, http.StatusInternalServerError, err)
		return
	}
	total, err := extendProgram(table, weeks)
	if err != nil {
		sendError(w, http.StatusInternalServerError, err)
		return
	}

	log.Infof("Extended %s by %d weeks to %d", cfg.TableName, weeks, total)
	sendJSON(w, http.StatusOK, weeksResponse{Program: kind, Weeks: total})
}

func initProgram(table sheets.Table, weeks int) error {
	if err := table.Ensure(); err != nil {
		return err
	}
	return program.NewBuilder(table).Initialize(weeks)
}

func extendProgram(table sheets.Table, weeks int) (int, error) {
	if err := table.Ensure(); err != nil {
		return 0, err
	}
	b := program.NewBuilder(table)
	existing, err := b.CurrentWeeks()
	if err != nil {
		return 0, err
	}
	if err := b.AddWeeks(existing, weeks); err != nil {
		return 0, err
	}
	return existing + weeks, nil
}

// decodeWeeks rejects anything but a positive integer before a single cell
// is touched.
func decodeWeeks(r *http.Request) (int, error) {
	var req weeksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return 0, fmt.Errorf("invalid request body: %w", err)
	}
	if req.Weeks <= 0 {
		return 0, fmt.Errorf("weeks must be a positive integer, got %d", req.Weeks)
	}
	return req.Weeks, nil
}

func sendJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Errorf("Failed to marshal response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	sendResponse(w, status, body)
}

func sendError(w http.ResponseWriter, status int, err error) {
	log.Debugf("Request failed: %v", err)
	sendJSON(w, status, errorResponse{Error: err.Error()})
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
