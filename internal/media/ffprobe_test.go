package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFFProbe_Duration(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		runErr  error
		want    float64
		wantErr bool
	}{
		{name: "parses seconds", out: "63.200000\n", want: 63.2},
		{name: "not available", out: "N/A\n", wantErr: true},
		{name: "empty output", out: "", wantErr: true},
		{name: "garbage", out: "abc", wantErr: true},
		{name: "command fails", runErr: errors.New("exit status 1"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotArgs []string
			p := NewFFProbe("")
			p.Run = func(ctx context.Context, binary string, args ...string) ([]byte, error) {
				assert.Equal(t, "ffprobe", binary)
				gotArgs = args
				return []byte(tt.out), tt.runErr
			}

			got, err := p.Duration(context.Background(), "/tmp/v.mp4")
			assert.Equal(t, "/tmp/v.mp4", gotArgs[len(gotArgs)-1])
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
