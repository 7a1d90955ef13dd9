// Package beerclient is a typed client for the beer API.
//
// It lists, fetches, creates, updates and deletes beers under /api/v1/beer/. Every request is
// authorized with an OAuth2 bearer token from an oauth2client.TokenSource; if no token can be
// obtained the operation fails with *AuthenticationError before the API is called.
//
//	tp := oauth2client.NewTokenProvider(ctx, tokenURL, clientID, clientSecret, "")
//	client, err := beerclient.New("http://localhost:8080", tp)
//	if err != nil {
//	    return err
//	}
//
//	page, err := client.List(ctx, &beerclient.ListFilter{
//	    Name:     beerclient.Ptr("ALE"),
//	    PageSize: beerclient.Ptr(25),
//	})
//
// Create and Update each make two calls: the write, then a GET of the result. When the write
// succeeded but the GET did not, the error is a *PartialSuccessError and the change may already
// be visible server-side. Create skips the GET when the server returns the created beer in the
// response body.
package beerclient
