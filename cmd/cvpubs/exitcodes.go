package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing or invalid cvpubs.yml)
	ExitDataError   = 3 // Data error (unknown venue, author list problems)
	ExitAPIError    = 4 // ADS API error (auth, rate limit, network)
)
