package handlers

import (
	"net/http"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/classify"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/store"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/utils"
)

// Options carries the runtime analysis settings every handler group needs.
type Options struct {
	Mode           classify.Mode
	Vocabulary     string
	SelfName       string
	MinChars       int
	TopN           int
	MaxUploadBytes int64
	ImportWorkers  int
	InvitesEnabled bool
	InviteTTL      int64 // nanoseconds; 0 means no expiry
}

// Engine builds a scoring engine from the configured mode and vocabulary.
func (o Options) Engine() *classify.Engine {
	return classify.New(o.Mode, classify.VocabularyByName(o.Vocabulary))
}

// Healthz responds to liveness probes; it reports degraded when the store
// is not open.
func Healthz(w http.ResponseWriter, r *http.Request) {
	if !store.Ready() {
		utils.JSONError(w, http.StatusServiceUnavailable, "store not ready")
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string]string{"status": "ok"})
}
