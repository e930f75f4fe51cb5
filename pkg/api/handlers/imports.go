package handlers

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/ingest"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/logger"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/store"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/telemetry"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/utils"
)

// RegisterImports registers the upload endpoint.
func RegisterImports(r *mux.Router, opts Options) {
	r.HandleFunc("/imports", func(w http.ResponseWriter, req *http.Request) {
		createImport(w, req, opts)
	}).Methods(http.MethodPost)
}

// createImport handles POST /v1/imports: a multipart form with one or more
// "files" parts (LINE .txt exports) and an optional "display_name" field
// overriding the configured self name.
func createImport(w http.ResponseWriter, r *http.Request, opts Options) {
	if opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, opts.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(opts.MaxUploadBytes); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid multipart upload: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	selfName := opts.SelfName
	if v := r.FormValue("display_name"); v != "" {
		selfName = v
	}

	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		utils.JSONError(w, http.StatusBadRequest, "no files provided")
		return
	}

	var files []ingest.File
	for _, fh := range parts {
		f, err := fh.Open()
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "unreadable file part: "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			utils.JSONError(w, http.StatusBadRequest, "unreadable file part: "+fh.Filename)
			return
		}
		files = append(files, ingest.File{Name: fh.Filename, Data: data})
	}

	im := &ingest.Importer{
		SelfName: selfName,
		MinChars: opts.MinChars,
		Workers:  opts.ImportWorkers,
	}
	reports := im.Run(files)

	if convs, err := store.ListConversations(); err == nil {
		telemetry.StoredConversations.Set(float64(len(convs)))
	}
	logger.Info("import_request_done", "files", len(files))
	_ = utils.JSONWrite(w, http.StatusOK, map[string]interface{}{"reports": reports})
}
