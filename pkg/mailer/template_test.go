package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Verification(t *testing.T) {
	body, err := Render(TemplateVerification, map[string]string{
		"Link":     "http://localhost:3000/verify-email?token=abc",
		"ValidFor": "24 hours",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(body, "Hello,\n"))
	assert.Contains(t, body, "http://localhost:3000/verify-email?token=abc")
	assert.Contains(t, body, "This link will expire in 24 hours.")
	assert.Contains(t, body, "Bridal Shop Team")
}

func TestRender_EmployeeWelcome(t *testing.T) {
	body, err := Render(TemplateEmployeeWelcome, map[string]string{
		"FullName":          " Jane Perera ",
		"Role":              "EMPLOYEE",
		"Email":             "jane@shop.lk",
		"TemporaryPassword": "Ab1@xyzXYZ12",
		"LoginURL":          "http://localhost:3000/employee/login",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Hello Jane Perera,")
	assert.Contains(t, body, "Your employee account has been created")
	assert.Contains(t, body, "Temporary Password: Ab1@xyzXYZ12")
	assert.Contains(t, body, "Login URL: http://localhost:3000/employee/login")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("missing", nil)
	assert.Error(t, err)
}

func TestRenderString_SprigFuncs(t *testing.T) {
	out, err := RenderString(`{{ .Name | upper }} {{ default "n/a" .Missing }}`, map[string]interface{}{"Name": "lace"})
	require.NoError(t, err)
	assert.Equal(t, "LACE n/a", out)
}
