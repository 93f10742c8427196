package webhook

import (
	"crypto/subtle"
	"net/http"
)

// AuthenticateBasic checks an inbound request's basic auth credentials
// against the configured pair. Requests without a parseable Basic scheme
// header always fail.
func AuthenticateBasic(r *http.Request, username, password string) bool {
	gotUsername, gotPassword, ok := r.BasicAuth()
	if !ok {
		return false
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(gotUsername), []byte(username)) == 1
	passwordMatch := subtle.ConstantTimeCompare([]byte(gotPassword), []byte(password)) == 1
	return usernameMatch && passwordMatch
}
