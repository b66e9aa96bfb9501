package httpx

import (
	"net/http"
	"strconv"

	domainauth "github.com/target/timetracker/internal/domain/auth"
)

const (
	maxJSONBody = 64 << 10
	maxFormBody = 16 << 10
)

// ownerFunc resolves the user whose entries a request operates on.
// It writes the error response itself and returns false on failure.
type ownerFunc func(w http.ResponseWriter, r *http.Request) (int64, bool)

// sessionOwner is the logged-in user.
func sessionOwner(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := identityOrUnauthorized(w, r)
	return id.ID, ok
}

// pathOwner is the {user_id} path segment of the admin routes.
func pathOwner(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pathUserID(r)
	if !ok {
		WriteStatus(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func pathUserID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// identityOrUnauthorized returns the session identity or answers 401 for JSON callers.
func identityOrUnauthorized(w http.ResponseWriter, r *http.Request) (domainauth.Identity, bool) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		WriteStatus(w, http.StatusUnauthorized, "unauthorized")
		return domainauth.Identity{}, false
	}
	return id, true
}

// identityOrLogin returns the session identity or redirects page requests to the login page.
func identityOrLogin(w http.ResponseWriter, r *http.Request) (domainauth.Identity, bool) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		if s, found := SessionFromContext(r.Context()); found {
			s.Clear()
		}
		http.Redirect(w, r, LoginPath, http.StatusFound)
		return domainauth.Identity{}, false
	}
	return id, true
}

// limitBody caps the request body read by JSON and form decoders.
func limitBody(w http.ResponseWriter, r *http.Request, n int64) {
	r.Body = http.MaxBytesReader(w, r.Body, n)
}
