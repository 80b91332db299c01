// httpclient/methods.go
package httpclient

import "net/http"

// IsSupportedHTTPMethod reports whether the API accepts method. Only GET, POST, PUT and DELETE are used.
func IsSupportedHTTPMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// methodHasBody reports whether requests with method carry a JSON body.
func methodHasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut
}
