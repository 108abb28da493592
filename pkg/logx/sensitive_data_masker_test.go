package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"poolpower/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Access token",
			input:  []byte(`{"accessToken":"eyJhbGciOiJFUzI1NiIsInR5cC","refreshToken":"eyJhbGciOiJFUzI1NiIsInR5cCI6IkpXVCJ9"}`),
			output: []byte(`{"accessToken":"[MASKED]","refreshToken":"[MASKED]"}`),
		},
		{
			name:   "First name, last name, middle name and email",
			input:  []byte(`{"profile": {"lastName": "Doe", "firstName": "John", "middleName": "Michael", "email": "john@doe.com"}, "isMarketingConsentPermitted": true}`),
			output: []byte(`{"profile": {"lastName": "[MASKED]", "firstName": "[MASKED]", "middleName": "[MASKED]", "email": "[MASKED]"}, "isMarketingConsentPermitted": true}`),
		},
		{
			name:   "Contact number",
			input:  []byte(`{"dealId":"DEAL-7","contactNumber":"15551234567"}`),
			output: []byte(`{"dealId":"DEAL-7","contactNumber":"[MASKED]"}`),
		},
		{
			name:   "Messaging link",
			input:  []byte(`{"url":"https://wa.me/15551234567?text=Hi"}`),
			output: []byte(`{"url":"https://wa.me/[MASKED]?text=Hi"}`),
		},
		{
			name:   "Messaging link in a Location header",
			input:  []byte("Location: https://wa.me/254745771747?text=Hi%20PoolPower\r\n"),
			output: []byte("Location: https://wa.me/[MASKED]?text=Hi%20PoolPower\r\n"),
		},
		{
			name:   "Messaging link on another host",
			input:  []byte(`{"url":"https://chat.example.com/send/15551234567?text=Hi"}`),
			output: []byte(`{"url":"https://chat.example.com/send/[MASKED]?text=Hi"}`),
		},
		{
			name:   "Numeric path without a message stays",
			input:  []byte(`GET /v1/deals/12345?page=2`),
			output: []byte(`GET /v1/deals/12345?page=2`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
