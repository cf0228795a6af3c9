// Package pagination walks the paginated converged recordings listing.
//
// The recordings API conveys the next page as a server-issued cursor URL in
// the Link response header (rel="next"). Pages are therefore fetched strictly
// sequentially: each response tells us where the next request goes, and the
// accumulated result preserves API order across pages.
//
// Example usage:
//
//	c, _ := client.New(client.Config{Token: token})
//	fetcher := pagination.NewFetcher(c, pagination.DefaultConfig())
//	items, err := fetcher.FetchAll(ctx)
//
// The fetcher:
//   - Builds the initial URL for a 30-day UTC window with max=100
//   - Follows Link rel="next" cursors until the last page
//   - Waits out 429 responses (Retry-After, capped) and retries the same URL
//   - Aborts after 10 consecutive 429s or on any other failure
package pagination
