// response/success.go
/* Responsible for handling successful API responses. The body has already been read by the
dispatcher (it is logged at debug level), so handlers work on the raw bytes. */
package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/classowl/go-openclass/logger"
	"go.uber.org/zap"
)

// HandleAPISuccessResponse unmarshals a 2xx response body into out.
// An empty body (204, most DELETEs) leaves out untouched. Every other body is decoded as JSON
// regardless of the advertised Content-Type. Octet-stream bodies are copied verbatim when out
// is a *[]byte.
func HandleAPISuccessResponse(resp *http.Response, body []byte, out any, log logger.Logger) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		log.Debug("Empty response body", zap.Int("status_code", resp.StatusCode))
		return nil
	}

	mimeType, _ := ParseContentTypeHeader(resp.Header.Get("Content-Type"))
	if strings.HasPrefix(mimeType, "application/octet-stream") {
		return handleBinaryData(body, out)
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.Warn("JSON unmarshal error", zap.String("content_type", mimeType), zap.Error(err))
		return err
	}

	log.Debug("Successfully unmarshalled JSON response", zap.String("content_type", mimeType))
	return nil
}

// handleBinaryData stores the body in a *[]byte.
func handleBinaryData(body []byte, out any) error {
	target, ok := out.(*[]byte)
	if !ok {
		return errors.New("output parameter is not suitable for binary data (*[]byte)")
	}
	*target = append((*target)[:0], body...)
	return nil
}
