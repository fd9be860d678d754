package interaction

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"

	mailintent "github.com/levelupinstalling/levelup/internal/mail"
)

// Field names a contact draft field.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// Fields lists the draft fields in form order.
var Fields = []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}

// ParseField maps a form field name to a Field.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if !slices.Contains(Fields, f) {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// Draft is the contact form as typed so far.
type Draft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Get returns the value of field.
func (d Draft) Get(field Field) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldSubject:
		return d.Subject
	case FieldMessage:
		return d.Message
	}
	return ""
}

// ComposerConfig parameterizes a ContactComposer.
type ComposerConfig struct {
	SiteName       string
	Recipient      string
	DefaultSubject string
	// Subjects restricts the subject to these options when non-empty.
	Subjects []string
}

// ContactComposer owns a contact draft, checks it on submit and turns it
// into a mail intent for the external mail handler.
type ContactComposer struct {
	cfg       ComposerConfig
	draft     Draft
	listeners observers[Draft]
}

// NewContactComposer returns a composer with an empty draft whose subject
// is the configured default.
func NewContactComposer(cfg ComposerConfig) *ContactComposer {
	cfg.Subjects = append([]string(nil), cfg.Subjects...)
	return &ContactComposer{
		cfg:   cfg,
		draft: Draft{Subject: cfg.DefaultSubject},
	}
}

// Config returns the composer configuration.
func (c *ContactComposer) Config() ComposerConfig { return c.cfg }

// Configure replaces the configuration and keeps the draft. An untouched
// draft moves to the new default subject.
func (c *ContactComposer) Configure(cfg ComposerConfig) {
	cfg.Subjects = append([]string(nil), cfg.Subjects...)
	untouched := c.draft == Draft{Subject: c.cfg.DefaultSubject}
	c.cfg = cfg
	if untouched && c.draft.Subject != cfg.DefaultSubject {
		c.draft = Draft{Subject: cfg.DefaultSubject}
		c.listeners.notify(c.draft)
	}
}

// Draft returns a copy of the current draft.
func (c *ContactComposer) Draft() Draft { return c.draft }

// SetField updates exactly one field. No validation happens here.
func (c *ContactComposer) SetField(field Field, value string) error {
	next := c.draft
	switch field {
	case FieldName:
		next.Name = value
	case FieldEmail:
		next.Email = value
	case FieldSubject:
		next.Subject = value
	case FieldMessage:
		next.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if next != c.draft {
		c.draft = next
		c.listeners.notify(next)
	}
	return nil
}

// Reset restores the initial draft.
func (c *ContactComposer) Reset() {
	initial := Draft{Subject: c.cfg.DefaultSubject}
	if c.draft == initial {
		return
	}
	c.draft = initial
	c.listeners.notify(initial)
}

// Validate checks the submit preconditions without building an intent.
func (c *ContactComposer) Validate() error {
	var fields []FieldError
	d := c.draft

	if strings.TrimSpace(d.Name) == "" {
		fields = append(fields, FieldError{Field: FieldName, Reason: "is required"})
	}
	switch email := strings.TrimSpace(d.Email); {
	case email == "":
		fields = append(fields, FieldError{Field: FieldEmail, Reason: "is required"})
	case !validAddress(email):
		fields = append(fields, FieldError{Field: FieldEmail, Reason: "is not a valid email address"})
	}
	switch {
	case strings.TrimSpace(d.Subject) == "":
		fields = append(fields, FieldError{Field: FieldSubject, Reason: "is required"})
	case len(c.cfg.Subjects) > 0 && !slices.Contains(c.cfg.Subjects, d.Subject):
		fields = append(fields, FieldError{Field: FieldSubject, Reason: "is not one of the offered subjects"})
	}
	if strings.TrimSpace(d.Message) == "" {
		fields = append(fields, FieldError{Field: FieldMessage, Reason: "is required"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Submit validates the draft, builds the mail intent and hands it to h.
// On validation failure no intent is built and h is not called. The draft
// is left as is either way. h may be nil.
func (c *ContactComposer) Submit(h mailintent.Handler) (mailintent.Intent, error) {
	if err := c.Validate(); err != nil {
		return mailintent.Intent{}, err
	}

	intent := c.Compose()
	if h != nil {
		if err := h.Handle(intent); err != nil {
			return intent, fmt.Errorf("handing off mail intent: %w", err)
		}
	}
	return intent, nil
}

// Compose builds the intent for the current draft without validating it.
func (c *ContactComposer) Compose() mailintent.Intent {
	d := c.draft
	return mailintent.Intent{
		Recipient: c.cfg.Recipient,
		Subject:   fmt.Sprintf("%s Inquiry: %s", c.cfg.SiteName, d.Subject),
		Body:      composeBody(d),
	}
}

// Subscribe registers fn for draft changes and returns its cancel func.
func (c *ContactComposer) Subscribe(fn func(Draft)) func() {
	return c.listeners.subscribe(fn)
}

// composeBody lays the draft out as plain text. Values go in verbatim.
func composeBody(d Draft) string {
	var b strings.Builder
	b.WriteString("NEW PROJECT INQUIRY\n")
	b.WriteString("--------------------------------\n")
	b.WriteString("ID: " + d.Name + "\n")
	b.WriteString("CONTACT: " + d.Email + "\n")
	b.WriteString("TARGET: " + d.Subject + "\n")
	b.WriteString("\n")
	b.WriteString("BRIEFING:\n")
	b.WriteString(d.Message)
	return b.String()
}

// validAddress accepts a bare addr-spec with a dotted domain.
func validAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
