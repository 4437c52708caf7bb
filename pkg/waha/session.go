package waha

import "net/http"

var (
	// StartSessionEndpoint starts (or creates and starts) a session.
	StartSessionEndpoint = MustEndpoint[None, SessionStartRequest, SessionDTO](EndpointSpec{
		Path:         "/api/sessions/start",
		Method:       http.MethodPost,
		ExpectedCode: http.StatusCreated,
		BodyDefaults: map[string]any{"name": DefaultSessionName},
		Doc:          "Start a session. Body defaults to the session named default.",
	})

	// StopSessionEndpoint stops a running session.
	StopSessionEndpoint = MustEndpoint[None, SessionStopRequest, Raw](EndpointSpec{
		Path:         "/api/sessions/stop",
		Method:       http.MethodPost,
		ExpectedCode: http.StatusCreated,
		BodyDefaults: map[string]any{"name": DefaultSessionName},
		Doc:          "Stop a session. Body defaults to the session named default.",
	})

	// ListSessionsEndpoint lists running sessions.
	ListSessionsEndpoint = MustEndpoint[None, None, []SessionInfo](EndpointSpec{
		Path:         "/api/sessions/",
		Method:       http.MethodGet,
		ExpectedCode: http.StatusOK,
		Doc:          "List sessions.",
	})

	// ListAllSessionsEndpoint lists sessions including stopped ones.
	ListAllSessionsEndpoint = MustEndpoint[ListSessionsParams, None, []SessionInfo](EndpointSpec{
		Path:          "/api/sessions/",
		Method:        http.MethodGet,
		ExpectedCode:  http.StatusOK,
		ParamDefaults: map[string]any{"all": true},
		Doc:           "List sessions, stopped ones included unless all=false is passed.",
	})

	// GetSessionEndpoint fetches one session by name.
	GetSessionEndpoint = MustEndpoint[None, None, SessionInfo](EndpointSpec{
		Path:         "/api/sessions/{session}",
		Method:       http.MethodGet,
		ExpectedCode: http.StatusOK,
		Doc:          "Get a single session by name.",
	})

	// LogoutSessionEndpoint logs a session out of its account.
	LogoutSessionEndpoint = MustEndpoint[None, SessionLogoutRequest, Raw](EndpointSpec{
		Path:         "/api/sessions/logout",
		Method:       http.MethodPost,
		ExpectedCode: http.StatusCreated,
		BodyDefaults: map[string]any{"name": DefaultSessionName},
		Doc:          "Log the session out of its paired account.",
	})

	// GetMeEndpoint returns the account a session is paired with.
	GetMeEndpoint = MustEndpoint[None, None, MeInfo](EndpointSpec{
		Path:         "/api/sessions/{session}/me",
		Method:       http.MethodGet,
		ExpectedCode: http.StatusOK,
		Doc:          "Get the account the session is logged in as.",
	})

	// GetQREndpoint returns the pairing QR code, as PNG bytes by default.
	GetQREndpoint = MustEndpoint[QRParams, None, Raw](EndpointSpec{
		Path:          "/api/{session}/auth/qr",
		Method:        http.MethodGet,
		ExpectedCode:  http.StatusOK,
		ParamDefaults: map[string]any{"format": string(QRFormatImage)},
		Doc:           "Get the pairing QR code for the session.",
	})

	// RequestCodeEndpoint requests a phone pairing code for a session.
	RequestCodeEndpoint = MustEndpoint[None, RequestCodeRequest, Raw](EndpointSpec{
		Path:         "/api/{session}/auth/request-code",
		Method:       http.MethodPost,
		ExpectedCode: http.StatusCreated,
		Doc:          "Request a pairing code for a phone number.",
	})
)

func sessionArgs(name string) map[string]string {
	if name == "" {
		name = DefaultSessionName
	}
	return map[string]string{"session": name}
}
