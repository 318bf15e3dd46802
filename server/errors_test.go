package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"product_copy_studio/generator"
	"product_copy_studio/session"
	"product_copy_studio/studio"
)

func TestStatusFor(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"generation failure": {
			err:  &generator.GenerationError{Language: "English", Section: generator.SectionDescription, Err: errors.New("upstream 500")},
			want: http.StatusBadGateway,
		},
		"generation timeout": {
			err:  &generator.GenerationError{Language: "English", Section: generator.SectionDescription, Err: context.DeadlineExceeded},
			want: http.StatusGatewayTimeout,
		},
		"bare timeout": {err: fmt.Errorf("run: %w", context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		"busy":         {err: studio.ErrBusy, want: http.StatusConflict},
		"no content":   {err: fmt.Errorf("%w: French/description", session.ErrNoContent), want: http.StatusNotFound},
		"unknown":      {err: errors.New("disk full"), want: http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}
