// Package translation answers "how do you say ..." questions, online through
// a translation service and offline from the vocabulary table.
package translation

import "context"

//go:generate mockgen -source=provider.go -destination=mock/provider_mock.go

// Provider translates text between two language codes.
type Provider interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}
