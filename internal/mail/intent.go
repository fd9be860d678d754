package mail

import (
	"net/url"
	"strings"
)

// Intent is a fully composed email handed to an external mail handler.
// It is built once per submission and never mutated afterwards.
type Intent struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Handler receives a composed Intent. Whether the user actually sends the
// resulting message is outside of what a Handler can observe.
type Handler interface {
	Handle(Intent) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(Intent) error

// Handle calls f(in).
func (f HandlerFunc) Handle(in Intent) error { return f(in) }

// URL returns the mailto link for the intent. Subject and body are
// percent-encoded the way browsers expect in a mailto query (spaces as %20,
// line breaks as %0A), not form-encoded.
func URL(in Intent) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(in.Recipient)

	var params []string
	if in.Subject != "" {
		params = append(params, "subject="+escape(in.Subject))
	}
	if in.Body != "" {
		params = append(params, "body="+escape(in.Body))
	}
	if len(params) > 0 {
		b.WriteByte('?')
		b.WriteString(strings.Join(params, "&"))
	}
	return b.String()
}

// escape encodes s like encodeURIComponent. url.QueryEscape turns spaces
// into '+', which mail clients show literally.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
