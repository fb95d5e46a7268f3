// Package intelligentdata provides a Go client SDK for the Intelligent
// Data API: address, tax-ID and bank-account validation, business
// lookup, and sanctions and disqualified-director screening.
//
// Basic usage:
//
//	client, err := intelligentdata.New(intelligentdata.WithAPIKey("svm..."))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.ValidateAddress(ctx, &intelligentdata.AddressRequest{
//	    AddressLine1: "123 Main St",
//	    City:         "New York",
//	    State:        "NY",
//	    PostalCode:   "10001",
//	    Country:      "US",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Valid:", result.IsValid, "confidence:", result.ConfidenceScore)
//
// # Authentication
//
// Exactly one authentication mode must be configured: an API key via
// [WithAPIKey], or OAuth2 client credentials via [WithClientCredentials].
// Configuring both or neither is a construction error. In OAuth2 mode
// the access token is cached and refreshed transparently shortly before
// it expires.
//
// # Retry Behaviour
//
// Transient failures (network errors, timeouts, 5xx responses and 429
// rate limits) are retried with exponential backoff and jitter, up to
// three attempts by default. A Retry-After value supplied by the server
// on a 429 takes precedence over the computed backoff. Authentication
// failures and other 4xx responses are never retried.
//
// # Errors
//
// Failures surface as typed errors: [APIError], [RateLimitError],
// [AuthError] and [NetworkError]. Sentinels such as [ErrRateLimited]
// and [ErrUnauthorized] support errors.Is checks. Every result type
// carries a Raw field with the complete decoded response body, so
// fields the SDK does not map remain accessible.
package intelligentdata
