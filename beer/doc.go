// Package beer defines the beer resource exchanged with the beer API.
//
// A Beer is identified by a server-assigned UUID. Clients build beers without an ID for
// creation; the server assigns one and returns it on subsequent reads.
//
// # Wire format
//
//	{
//	    "id": "5d1c2f0c-9b43-4e43-a1a6-5d8b0ad6c41e",
//	    "beerName": "Mango Bobs",
//	    "beerStyle": "IPA",
//	    "price": 10.99,
//	    "quantityOnHand": 500,
//	    "upc": "123245"
//	}
//
// Decoding also accepts "name" and "style" as field names and prices encoded as strings.
// Unknown fields are ignored. An unknown beerStyle token is a decoding error.
//
// Validate checks the constraints the API enforces on create and update requests.
package beer
