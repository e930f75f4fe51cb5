package handlers

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/itoken5577-cpun/zenbu-jibun/pkg/logger"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/models"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/store"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/telemetry"
	"github.com/itoken5577-cpun/zenbu-jibun/pkg/utils"
)

// RegisterConversations registers listing and deletion of imported
// conversations.
func RegisterConversations(r *mux.Router, opts Options) {
	r.HandleFunc("/conversations", listConversations).Methods(http.MethodGet)
	r.HandleFunc("/conversations/{name}", deleteConversation).Methods(http.MethodDelete)
}

func listConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := store.ListConversations()
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if convs == nil {
		convs = []models.Conversation{}
	}
	_ = utils.JSONWrite(w, http.StatusOK, map[string]interface{}{"conversations": convs})
}

func deleteConversation(w http.ResponseWriter, r *http.Request) {
	// path variables are not unescaped automatically
	name := mux.Vars(r)["name"]
	if dec, err := url.PathUnescape(name); err == nil {
		name = dec
	}
	if name == "" {
		utils.JSONError(w, http.StatusBadRequest, "missing conversation name")
		return
	}
	if _, err := store.GetConversation(name); err != nil {
		utils.JSONError(w, http.StatusNotFound, "unknown conversation")
		return
	}
	if err := store.DeleteConversation(name); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if convs, err := store.ListConversations(); err == nil {
		telemetry.StoredConversations.Set(float64(len(convs)))
	}
	logger.Info("conversation_deleted", "name", name)
	_ = utils.JSONWrite(w, http.StatusOK, map[string]string{"deleted": name})
}
