package mail

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

//go:embed templates/recovery.html.tmpl
var recoveryTemplate string

// RecoveryRenderer produces the body of the password recovery message. The
// link placed in the body points at the configured frontend page with the
// reset token as a query parameter.
type RecoveryRenderer struct {
	tmpl *template.Template
	url  string
}

func NewRecoveryRenderer(recoveryURL string) (*RecoveryRenderer, error) {
	tmpl, err := template.New("recovery").Parse(recoveryTemplate)
	if err != nil {
		return nil, fmt.Errorf("error parsing recovery template: %v", err)
	}
	return &RecoveryRenderer{tmpl: tmpl, url: recoveryURL}, nil
}

type recoveryData struct {
	Name string
	Link string
}

// Render returns the HTML body for a user with the given reset token.
func (r *RecoveryRenderer) Render(name, token string) (string, error) {
	var b strings.Builder
	data := recoveryData{
		Name: name,
		Link: fmt.Sprintf("%s?token=%s", r.url, url.QueryEscape(token)),
	}
	if err := r.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("error rendering recovery template: %v", err)
	}
	return b.String(), nil
}
