package auth

import "context"

// credentialKeyType is the context key type for the passthrough credential.
type credentialKeyType struct{}

var credentialKey = credentialKeyType{}

// WithCredential returns a context carrying the caller's Authorization
// header value. The credential is opaque; it is never parsed or stored.
func WithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialKey, credential)
}

// CredentialFromContext returns the passthrough credential, or an empty
// string when the request carried none.
func CredentialFromContext(ctx context.Context) string {
	if cred, ok := ctx.Value(credentialKey).(string); ok {
		return cred
	}
	return ""
}
