package utils

import "time"

// DeviceHeader identifies the calling app installation.
const DeviceHeader = "X-Device-ID"

// RequestIDHeader carries the request id back to the client.
const RequestIDHeader = "X-Request-ID"

// SessionTTL bounds how long an unused device session is kept in Redis.
const SessionTTL = 30 * 24 * time.Hour

// ShutdownTimeout is how long in-flight requests get on shutdown.
const ShutdownTimeout = 5 * time.Second
