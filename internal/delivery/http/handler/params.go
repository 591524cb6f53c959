package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// pathID reads a positive numeric {id} route variable.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
