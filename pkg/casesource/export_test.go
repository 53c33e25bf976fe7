package casesource

// ResolveCases exposes resolve so tests can observe resolution
// failures without going through Run's t.Fatal.
var ResolveCases = Source.resolve
