package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitalvas/portbounce/pkg/dictionary"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindValidation, "validation"},
		{KindEncoding, "encoding"},
		{KindTransport, "transport"},
		{KindTimeout, "timeout"},
		{KindRejected, "rejected"},
		{Kind(0), "unknown(0)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	err := &Error{Kind: KindEncoding, Err: fmt.Errorf("%w: %q", dictionary.ErrUnknownAttribute, "Foo")}
	wrapped := fmt.Errorf("bounce: %w", err)

	assert.Equal(t, KindEncoding, KindOf(wrapped))
	assert.ErrorIs(t, wrapped, dictionary.ErrUnknownAttribute)
	assert.Equal(t, `unknown attribute: "Foo"`, err.Error())

	var target *Error
	assert.True(t, errors.As(wrapped, &target))

	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.False(t, IsTimeout(nil))
	assert.True(t, IsTimeout(newError(KindTimeout, "no response")))
}
