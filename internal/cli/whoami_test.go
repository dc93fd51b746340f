package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/handl-dev/handl/internal/api"
)

func TestPrintAccountFullProfile(t *testing.T) {
	var buf bytes.Buffer
	printAccount(&buf, &api.User{
		Name:        "Ada Lovelace",
		Username:    "ada",
		Email:       "ada@example.com",
		PhoneNumber: "555-0100",
	})
	assert.Equal(t, "Ada Lovelace (@ada)\nEmail: ada@example.com\nPhone: 555-0100\n", buf.String())
}

func TestPrintAccountSkipsEmptyContactFields(t *testing.T) {
	var buf bytes.Buffer
	printAccount(&buf, &api.User{Name: "Grace", Username: "grace"})
	assert.Equal(t, "Grace (@grace)\n", buf.String())
	assert.NotContains(t, buf.String(), "Email:")
	assert.NotContains(t, buf.String(), "Phone:")
}
