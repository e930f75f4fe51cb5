package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/aggregate"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/store"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/telemetry"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/utils"
)

// RegisterAnalysis registers the read-only analysis views. Every endpoint
// recomputes from the stored messages; nothing is cached.
func RegisterAnalysis(r *mux.Router, opts Options) {
	r.HandleFunc("/analysis", func(w http.ResponseWriter, req *http.Request) {
		getAnalysis(w, req, opts)
	}).Methods(http.MethodGet)
	r.HandleFunc("/analysis/diffs", func(w http.ResponseWriter, req *http.Request) {
		getDiffs(w, req, opts)
	}).Methods(http.MethodGet)
	r.HandleFunc("/analysis/summary", func(w http.ResponseWriter, req *http.Request) {
		getSummary(w, req, opts)
	}).Methods(http.MethodGet)
	r.HandleFunc("/analysis/table", func(w http.ResponseWriter, req *http.Request) {
		getTable(w, req, opts)
	}).Methods(http.MethodGet)
}

func loadDistributions(opts Options) (*aggregate.DistributionSet, error) {
	msgs, err := store.ListAllMessages()
	if err != nil {
		return nil, err
	}
	set := aggregate.Build(opts.Engine(), msgs)
	telemetry.AnalysisRuns.Inc()
	return set, nil
}

// getAnalysis handles GET /v1/analysis: the flattened distribution map,
// global entry plus one per counterparty.
func getAnalysis(w http.ResponseWriter, r *http.Request, opts Options) {
	set, err := loadDistributions(opts)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string]interface{}{
		"mode":          opts.Mode.String(),
		"distributions": set.Flatten(),
	})
}

// getDiffs handles GET /v1/analysis/diffs. Without parameters it returns
// every counterparty's full diff set; with ?counterparty=X it returns that
// counterparty's top-N deviations (?n= overrides the configured default).
func getDiffs(w http.ResponseWriter, r *http.Request, opts Options) {
	set, err := loadDistributions(opts)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	diffs := aggregate.DiffFromGlobal(set)

	cp := r.URL.Query().Get("counterparty")
	if cp == "" {
		_ = utils.JSONWrite(w, http.StatusOK, map[string]interface{}{"diffs": diffs})
		return
	}
	if _, ok := diffs[cp]; !ok {
		utils.JSONError(w, http.StatusNotFound, "unknown counterparty")
		return
	}
	n := opts.TopN
	if v := r.URL.Query().Get("n"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			n = parsed
		}
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string]interface{}{
		"counterparty": cp,
		"top_diffs":    aggregate.TopDiffs(diffs, cp, n),
	})
}

// getSummary handles GET /v1/analysis/summary: the aggregate-only export.
func getSummary(w http.ResponseWriter, r *http.Request, opts Options) {
	set, err := loadDistributions(opts)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	displayName := r.URL.Query().Get("display_name")
	if displayName == "" {
		displayName = opts.SelfName
	}
	diffs := aggregate.DiffFromGlobal(set)
	_ = utils.JSONWrite(w, http.StatusOK, aggregate.BuildSummary(set, diffs, displayName, opts.TopN))
}

// getTable handles GET /v1/analysis/table?kind=style|think. Without a kind
// both tables are returned.
func getTable(w http.ResponseWriter, r *http.Request, opts Options) {
	set, err := loadDistributions(opts)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	style, think := aggregate.Tables(set)
	switch r.URL.Query().Get("kind") {
	case "style":
		_ = utils.JSONWrite(w, http.StatusOK, style)
	case "think":
		_ = utils.JSONWrite(w, http.StatusOK, think)
	case "":
		_ = utils.JSONWrite(w, http.StatusOK, map[string]aggregate.Table{"style": style, "think": think})
	default:
		utils.JSONError(w, http.StatusBadRequest, "kind must be style or think")
	}
}
