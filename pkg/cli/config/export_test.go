package config

// Expose internals for testing.
var ParseLevel = parseLevel
