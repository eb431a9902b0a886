package mailer

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const (
	TemplateVerification    = "verification"
	TemplatePasswordReset   = "password_reset"
	TemplateEmployeeWelcome = "employee_welcome"
)

const templateSource = `
{{- define "verification" -}}
Hello,

Thank you for registering with Bridal Shop!

Please click the link below to verify your email address:
{{ .Link }}

This link will expire in {{ .ValidFor }}.

If you didn't create an account, please ignore this email.

Best regards,
Bridal Shop Team
{{ end -}}

{{- define "password_reset" -}}
Hello,

You requested to reset your password for your Bridal Shop account.

Please click the link below to reset your password:
{{ .Link }}

This link will expire in {{ .ValidFor }}.

If you didn't request a password reset, please ignore this email.

Best regards,
Bridal Shop Team
{{ end -}}

{{- define "employee_welcome" -}}
Hello {{ .FullName | trim }},

Your {{ .Role | lower }} account has been created at Bridal Shop!

Login Credentials:
Email: {{ .Email }}
Temporary Password: {{ .TemporaryPassword }}

Please login and change your password as soon as possible.

Login URL: {{ .LoginURL }}

Best regards,
Bridal Shop Team
{{ end -}}
`

var templates = template.Must(template.New("mail").Funcs(sprig.TxtFuncMap()).Parse(templateSource))

// Render executes one of the named mail templates
func Render(name string, data interface{}) (string, error) {
	var out bytes.Buffer
	if err := templates.ExecuteTemplate(&out, name, data); err != nil {
		return "", err
	}
	return out.String(), nil
}

// RenderString parses and executes an ad hoc template with the same functions
func RenderString(tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New("").Funcs(sprig.TxtFuncMap()).Parse(tmplStr)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
