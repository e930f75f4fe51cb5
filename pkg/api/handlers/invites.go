package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/logger"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/models"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/security"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/store"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/utils"
)

// RegisterInvites registers admin-only invite management.
func RegisterInvites(r *mux.Router, opts Options) {
	r.Handle("/invites", security.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		createInvite(w, req, opts)
	}))).Methods(http.MethodPost)
	r.Handle("/invites", security.RequireAdmin(http.HandlerFunc(listInvites))).Methods(http.MethodGet)
	r.Handle("/invites/{token}", security.RequireAdmin(http.HandlerFunc(deleteInvite))).Methods(http.MethodDelete)
}

// createInvite mints a new invite token. An optional JSON body may carry a
// note and a ttl override in seconds.
func createInvite(w http.ResponseWriter, r *http.Request, opts Options) {
	var body struct {
		Note       string `json:"note"`
		TTLSeconds int64  `json:"ttl_seconds"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body) // empty body is fine
	}

	now := time.Now().UTC()
	inv := models.Invite{
		Token:     utils.NewToken(),
		CreatedTS: now.UnixNano(),
		Note:      body.Note,
	}
	ttl := opts.InviteTTL
	if body.TTLSeconds > 0 {
		ttl = body.TTLSeconds * int64(time.Second)
	}
	if ttl > 0 {
		inv.ExpiresTS = now.UnixNano() + ttl
	}
	if err := store.SaveInvite(inv); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info("invite_created", "expires_ts", inv.ExpiresTS)
	_ = utils.JSONWrite(w, http.StatusCreated, inv)
}

func listInvites(w http.ResponseWriter, r *http.Request) {
	if n, err := store.DeleteExpiredInvites(time.Now().UTC()); err == nil && n > 0 {
		logger.Info("expired_invites_removed", "count", n)
	}
	invs, err := store.ListInvites()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if invs == nil {
		invs = []models.Invite{}
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string]interface{}{"invites": invs})
}

func deleteInvite(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		utils.JSONError(w, http.StatusBadRequest, "missing token")
		return
	}
	if err := store.DeleteInvite(token); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string]string{"deleted": token})
}
