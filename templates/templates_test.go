package templates

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	for _, name := range []string{"login.html", "signup.html", "dashboard.html", "attendance.html"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := tmpl.ExecuteTemplate(&buf, name, map[string]interface{}{"Username": "alice"})
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "<form")
			assert.Contains(t, buf.String(), "Logout alice")
		})
	}
}

func TestLoad_RendersMessage(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "login.html", map[string]interface{}{
		"Result": struct{ Status, Message string }{"failure", "Invalid credentials <b>"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `class="message failure"`)
	assert.Contains(t, buf.String(), "Invalid credentials &lt;b&gt;")
	assert.NotContains(t, buf.String(), "Logout")
}

func TestStatic(t *testing.T) {
	f, err := Static().Open("app.js")
	require.NoError(t, err)
	defer f.Close()

	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Server error, please try again")
}
