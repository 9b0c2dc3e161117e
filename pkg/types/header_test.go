package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadersAdd(t *testing.T) {
	var h Headers
	h.Add("Subject", "Hello")
	h.Add("Labels", "INBOX", "IMPORTANT")
	h.Add("Subject", "Second")

	assert.Len(t, h, 3)
	assert.Equal(t, "Subject", h[0].Name)
	assert.Equal(t, []string{"INBOX", "IMPORTANT"}, h[1].Values)
	// Repeated names stay separate fields in order.
	assert.Equal(t, []string{"Second"}, h[2].Values)
}

func TestHeadersGet(t *testing.T) {
	var h Headers
	h.Add("From", "a@example.com")
	h.Add("From", "b@example.com")

	assert.Equal(t, []string{"a@example.com"}, h.Get("From"))
	assert.Nil(t, h.Get("To"))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "valid", cfg: Config{DataDir: "/tmp/archive"}},
		{name: "empty data dir", cfg: Config{}, wantErr: ErrDataDirEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
