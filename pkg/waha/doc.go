// Package waha is a typed client for the WAHA messaging gateway HTTP API.
//
// Every gateway operation is an *Endpoint built once from an EndpointSpec
// (path template, verb, expected status and the query/body/response models)
// and invoked with Call. A call performs exactly one HTTP round-trip; there
// are no retries and no timeout policy beyond the transport's own. Client
// binds the session endpoints to one Config and transport.
//
//	client := waha.NewClient(waha.DefaultConfig())
//	dto, err := client.StartSession(ctx, nil)
//	var apiErr *waha.APIError
//	if errors.As(err, &apiErr) {
//		log.Printf("gateway said: %v", apiErr.Payload)
//	}
//
// Failures with an unexpected status are reported as *StatusError when the
// gateway returned no decodable JSON, and as *APIError when it did.
package waha
