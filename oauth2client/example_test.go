package oauth2client_test

import (
	"context"
	"fmt"

	"github.com/GooseZen/spring-6-resttemplate/oauth2client"
)

// ExampleNewTokenProvider demonstrates creating a token provider.
func ExampleNewTokenProvider() {
	ctx := context.Background()

	tp := oauth2client.NewTokenProvider(
		ctx,
		"https://auth.example.com/oauth2/token",
		"messaging-client",
		"secret",
		"message.read message.write",
	)

	fmt.Printf("TokenProvider created: %t\n", tp != nil)
	// Output: TokenProvider created: true
}

// ExampleTokenProvider_CurrentToken demonstrates manual token retrieval.
func ExampleTokenProvider_CurrentToken() {
	ctx := context.Background()

	tp := oauth2client.NewTokenProvider(
		ctx,
		"http://127.0.0.1:1/oauth2/token",
		"messaging-client",
		"secret",
		"message.read",
	)

	// This would normally fetch a real token
	if _, err := tp.CurrentToken(ctx); err != nil {
		fmt.Println("Token fetch attempted")
	}

	// Output: Token fetch attempted
}

// ExampleNewStaticTokenSource demonstrates a never-expiring token for tests.
func ExampleNewStaticTokenSource() {
	src := oauth2client.NewStaticTokenSource("test")

	token, _ := src.CurrentToken(context.Background())
	fmt.Println(token.AuthorizationHeader(), token.NeverExpires())
	// Output: Bearer test true
}
