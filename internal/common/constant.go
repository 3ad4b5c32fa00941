package common

// DefaultSecret is the value the secret fields are prefilled with.
const DefaultSecret = "password"

// StateCookieName carries the OAuth state between /signin and /callback.
const StateCookieName = "s3share_state"

// RequestIDHeaderName is read from and echoed to HTTP requests.
const RequestIDHeaderName = "X-Request-ID"
