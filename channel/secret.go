package channel

import (
	"context"
	"errors"

	"github.com/hmapp/maps-key-bridge/secret"
)

// SecretHandler adapts a SecretProvider to the channel protocol.
func SecretHandler(p secret.SecretProvider) Handler {
	return HandlerFunc(func(ctx context.Context, call Call) Result {
		value, err := p.GetSecret(ctx, call.Method)
		if err == nil {
			return Success(value)
		}

		if errors.Is(err, secret.ErrNotImplemented) {
			return NotImplemented()
		}

		var se *secret.Error
		if errors.As(err, &se) {
			return Failure(string(se.Code), se.Message)
		}
		return Failure(string(secret.CodeLookupFailed), err.Error())
	})
}
