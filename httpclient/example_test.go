package httpclient_test

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/GooseZen/spring-6-resttemplate/config"
	"github.com/GooseZen/spring-6-resttemplate/httpclient"
	"github.com/GooseZen/spring-6-resttemplate/oauth2client"
)

// Example demonstrates basic HTTP client usage with OAuth2.
func Example() {
	ctx := context.Background()

	tp := oauth2client.NewTokenProvider(
		ctx,
		"https://auth.example.com/oauth2/token",
		"messaging-client",
		"secret",
		"message.read message.write",
	)

	client := httpclient.NewHTTPClient(tp)

	fmt.Printf("HTTP client created with timeout: %v\n", client.Timeout)
	// Output: HTTP client created with timeout: 30s
}

// ExampleAuthorizer_Authorize demonstrates authorizing a single request by hand.
func ExampleAuthorizer_Authorize() {
	authorizer := httpclient.NewAuthorizer(oauth2client.NewStaticTokenSource("abc"))

	req, _ := http.NewRequest(http.MethodGet, "http://localhost:8080/api/v1/beer/", nil)

	authorized, err := authorizer.Authorize(req)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(authorized.Header.Get("Authorization"))
	// Output: Bearer abc
}

// ExampleNewBuilder demonstrates using the builder pattern for HTTP clients.
func ExampleNewBuilder() {
	ctx := context.Background()

	client, err := httpclient.NewBuilder().
		WithOAuth2(ctx, "https://auth.example.com/oauth2/token", "messaging-client", "secret", "message.read").
		WithTimeout(60 * time.Second).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Client configured with timeout: %v\n", client.Timeout)
	// Output: Client configured with timeout: 1m0s
}

// ExampleBuilder_WithTLS demonstrates TLS configuration.
func ExampleBuilder_WithTLS() {
	client, err := httpclient.NewBuilder().
		WithTokenSource(oauth2client.NewStaticTokenSource("abc")).
		WithTLS(
			"/path/to/ca.crt",     // CA certificate
			"/path/to/client.crt", // Client certificate (optional)
			"/path/to/client.key", // Client key (optional)
		).
		Build()
	if err != nil {
		// In this example, files don't exist, so we expect an error
		fmt.Println("TLS configuration attempted")
		return
	}

	fmt.Println("TLS configured")
	_ = client
	// Output: TLS configuration attempted
}

// ExampleBuilder_WithoutRedirects shows a redirect handed back to the caller.
func ExampleBuilder_WithoutRedirects() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/v1/beer/", http.StatusFound)
	}))
	defer server.Close()

	client, err := httpclient.NewBuilder().WithoutRedirects().Build()
	if err != nil {
		log.Fatal(err)
	}

	resp, err := client.Get(server.URL + "/beers")
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	fmt.Println(resp.StatusCode, resp.Header.Get("Location"))
	// Output: 302 /api/v1/beer/
}

// ExampleFromConfig builds the client for a loaded configuration.
func ExampleFromConfig() {
	cfg := &config.Config{
		API: config.APIConfig{BaseURL: "http://localhost:8080", Timeout: 5 * time.Second},
	}

	client, err := httpclient.FromConfig(cfg).Build()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(client.Timeout)
	// Output: 5s
}
