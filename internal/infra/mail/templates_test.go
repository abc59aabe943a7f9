package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPMailCarriesTextAndHTML(t *testing.T) {
	msg, err := OTPMail("ada@example.com", "Ada Obi", "482913", 10)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", msg.To)
	assert.Contains(t, msg.HTML, "482913")
	assert.Contains(t, msg.Text, "482913")
	assert.Contains(t, msg.Text, "expires in 10 minutes")
	assert.NotContains(t, msg.Text, "<")
}

func TestResetPasswordMailTextCarriesLink(t *testing.T) {
	resetURL := "https://app.ladx.africa/reset?token=abc"

	msg, err := ResetPasswordMail("ada@example.com", "Ada Obi", resetURL)
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, resetURL)
	assert.Contains(t, msg.Text, resetURL)
}

func TestEventMailTextCarriesMessage(t *testing.T) {
	msg, err := EventMail("ada@example.com", "Ada Obi", "Order matched", "Your order TRK1 has been matched.")
	require.NoError(t, err)

	assert.Equal(t, "Order matched", msg.Subject)
	assert.Contains(t, msg.Text, "Hi Ada Obi,")
	assert.Contains(t, msg.Text, "Your order TRK1 has been matched.")
}
