// response/error.go
// Extraction of a human-readable message from vendor error bodies.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/classowl/go-openclass/logger"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// APIError represents an api error response.
type APIError struct {
	StatusCode  int      `json:"status_code"`
	Method      string   `json:"method"`
	URL         string   `json:"url"`
	Message     string   `json:"message"`
	Details     []string `json:"details,omitempty"`
	RawResponse string   `json:"raw_response"`
}

// Error returns a string representation of the APIError.
func (e *APIError) Error() string {
	message := e.Message
	if message == "" {
		message = http.StatusText(e.StatusCode)
	}
	if len(e.Details) > 0 {
		message = fmt.Sprintf("%s (%s)", message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("API Error: StatusCode=%d, Message=%s", e.StatusCode, message)
}

// jsonErrorBody covers the error shapes seen from the OpenClass API gateway.
type jsonErrorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Errors  []struct {
		Code        string `json:"code"`
		Field       string `json:"field"`
		Message     string `json:"message"`
		Description string `json:"description"`
	} `json:"errors"`
}

// HandleAPIErrorResponse builds an APIError from a non-2xx response whose body has already been read.
func HandleAPIErrorResponse(resp *http.Response, body []byte, log logger.Logger) *APIError {
	apiError := &APIError{
		StatusCode:  resp.StatusCode,
		RawResponse: string(body),
	}
	if resp.Request != nil {
		apiError.Method = resp.Request.Method
		apiError.URL = resp.Request.URL.String()
	}

	mimeType, _ := ParseContentTypeHeader(resp.Header.Get("Content-Type"))
	switch mimeType {
	case "application/json":
		parseJSONResponse(body, apiError)
	case "application/xml", "text/xml":
		parseXMLResponse(body, apiError)
	case "text/html":
		parseHTMLResponse(body, apiError)
	case "text/plain":
		parseTextResponse(body, apiError)
	default:
		// Unlabelled bodies are usually JSON from this API.
		if json.Valid(body) {
			parseJSONResponse(body, apiError)
		} else {
			parseTextResponse(body, apiError)
		}
	}

	log.Debug("Parsed API error response",
		zap.Int("status_code", apiError.StatusCode),
		zap.String("message", apiError.Message),
		zap.Strings("details", apiError.Details))

	return apiError
}

// parseJSONResponse fills Message and Details from known JSON error shapes.
func parseJSONResponse(bodyBytes []byte, apiError *APIError) {
	var parsed jsonErrorBody
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		apiError.Message = "Failed to parse JSON error response"
		return
	}

	apiError.Message = parsed.Message
	if apiError.Message == "" && len(parsed.Error) > 0 {
		var errString string
		var errObject struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(parsed.Error, &errString) == nil {
			apiError.Message = errString
		} else if json.Unmarshal(parsed.Error, &errObject) == nil {
			apiError.Message = errObject.Message
		}
	}
	for _, e := range parsed.Errors {
		detail := e.Message
		if detail == "" {
			detail = e.Description
		}
		if e.Field != "" {
			detail = fmt.Sprintf("%s: %s", e.Field, detail)
		}
		if detail != "" {
			apiError.Details = append(apiError.Details, detail)
		}
	}

	if apiError.Message == "" {
		apiError.Message = "An unknown error occurred"
	}
}

// parseXMLResponse accumulates the text nodes of an XML error body.
func parseXMLResponse(bodyBytes []byte, apiError *APIError) {
	doc, err := xmlquery.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		apiError.Message = "Failed to parse XML error response"
		return
	}

	var messages []string
	var traverse func(*xmlquery.Node)
	traverse = func(n *xmlquery.Node) {
		if n.Type == xmlquery.TextNode && strings.TrimSpace(n.Data) != "" {
			messages = append(messages, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	} else {
		apiError.Message = "Failed to extract error details from XML response"
	}
}

// parseTextResponse uses a plain text body as the message.
func parseTextResponse(bodyBytes []byte, apiError *APIError) {
	apiError.Message = strings.TrimSpace(string(bodyBytes))
}

// parseHTMLResponse concatenates the text of <title>, <h1> and <p> elements, which is where
// gateway error pages put their explanation.
func parseHTMLResponse(bodyBytes []byte, apiError *APIError) {
	doc, err := html.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		apiError.Message = "Failed to parse HTML error response"
		return
	}

	var messages []string
	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "h1" || n.Data == "title") {
			if text := strings.Join(strings.Fields(textContent(n)), " "); text != "" {
				messages = append(messages, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}
	parse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	} else {
		apiError.Message = "HTML Error: See 'RawResponse' field for details."
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			sb.WriteString(" ")
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
