package waha

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/samvad-hq/waha-client/pkg/httpclient"
)

// placeholderPattern matches path segments such as /{session}.
var placeholderPattern = regexp.MustCompile(`/\{([a-zA-Z]*)\}`)

// EndpointSpec declares a single gateway operation.
type EndpointSpec struct {
	Path         string
	Method       string
	ExpectedCode int
	Doc          string
	// ParamDefaults and BodyDefaults are decoded into a fresh model when
	// the caller supplies none. Keys are the models' JSON field names.
	ParamDefaults map[string]any
	BodyDefaults  map[string]any
}

// shape is the combination of inputs an endpoint takes.
type shape uint8

const (
	shapeParams shape = 1 << iota
	shapeBody
	shapePath
)

var shapeNames = [8]string{
	0:                                   "plain",
	shapeParams:                         "params",
	shapeBody:                           "body",
	shapeParams | shapeBody:             "params+body",
	shapePath:                           "path",
	shapePath | shapeParams:             "path+params",
	shapePath | shapeBody:               "path+body",
	shapePath | shapeParams | shapeBody: "path+params+body",
}

func (s shape) String() string { return shapeNames[s&7] }

// CallOptions carries the per-call inputs of an endpoint. Fields that the
// endpoint's shape does not take are ignored.
type CallOptions[P, B any] struct {
	Params   *P
	Body     *B
	PathArgs map[string]string
	// Client is the transport to use; nil creates one for this call.
	Client httpclient.Client
	Logger Logger
}

// Endpoint performs one typed round-trip against the gateway. P is the
// query parameter model, B the body model and R the response model; None
// marks an absent model and Raw returns the undecoded body.
type Endpoint[P, B, R any] struct {
	path          string
	method        Method
	expected      int
	doc           string
	paramDefaults map[string]any
	bodyDefaults  map[string]any
	pathArgs      []string
	shape         shape
}

// prepared is the request material resolved for one call.
type prepared struct {
	path  string
	query map[string]string
	body  any
}

// NewEndpoint validates def and resolves the endpoint's shape.
func NewEndpoint[P, B, R any](def EndpointSpec) (*Endpoint[P, B, R], error) {
	method, err := ParseMethod(def.Method)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(def.Path, "/") {
		return nil, fmt.Errorf("endpoint path %q must start with /", def.Path)
	}
	if def.ExpectedCode < 100 || def.ExpectedCode > 599 {
		return nil, fmt.Errorf("endpoint %s: invalid expected status %d", def.Path, def.ExpectedCode)
	}

	pathArgs := extractPathArgs(def.Path)
	for _, name := range pathArgs {
		if name == "" {
			return nil, fmt.Errorf("endpoint %s: empty path placeholder {}", def.Path)
		}
	}

	e := &Endpoint[P, B, R]{
		path:          def.Path,
		method:        method,
		expected:      def.ExpectedCode,
		doc:           def.Doc,
		paramDefaults: def.ParamDefaults,
		bodyDefaults:  def.BodyDefaults,
		pathArgs:      pathArgs,
	}
	if e.doc == "" {
		e.doc = "Simple API endpoint call for " + def.Path
	}
	if e.paramDefaults == nil {
		e.paramDefaults = map[string]any{}
	}
	if e.bodyDefaults == nil {
		e.bodyDefaults = map[string]any{}
	}

	if !isNone[P]() {
		e.shape |= shapeParams
	}
	if !isNone[B]() {
		e.shape |= shapeBody
	}
	if len(e.pathArgs) > 0 {
		e.shape |= shapePath
	}
	return e, nil
}

// MustEndpoint is NewEndpoint for package-level declarations.
func MustEndpoint[P, B, R any](def EndpointSpec) *Endpoint[P, B, R] {
	e, err := NewEndpoint[P, B, R](def)
	if err != nil {
		panic(err)
	}
	return e
}

// extractPathArgs returns the placeholder names in template order, without
// duplicates.
func extractPathArgs(path string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(path, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	args := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		args = append(args, m[1])
	}
	return args
}

// populatePathParams replaces each {key} in path with the escaped value.
func populatePathParams(path string, lookup map[string]string) string {
	for key, value := range lookup {
		path = strings.ReplaceAll(path, "{"+key+"}", url.PathEscape(value))
	}
	return path
}

// Path returns the path template, placeholders included.
func (e *Endpoint[P, B, R]) Path() string { return e.path }

// Method returns the HTTP verb.
func (e *Endpoint[P, B, R]) Method() Method { return e.method }

// ExpectedCode returns the only status code treated as success.
func (e *Endpoint[P, B, R]) ExpectedCode() int { return e.expected }

// Doc returns the endpoint's description.
func (e *Endpoint[P, B, R]) Doc() string { return e.doc }

// PathArgs returns the placeholder names in template order.
func (e *Endpoint[P, B, R]) PathArgs() []string { return append([]string(nil), e.pathArgs...) }

// HasParams reports whether the endpoint sends a query parameter model.
func (e *Endpoint[P, B, R]) HasParams() bool { return e.shape&shapeParams != 0 }

// HasBody reports whether the endpoint sends a JSON body.
func (e *Endpoint[P, B, R]) HasBody() bool { return e.shape&shapeBody != 0 }

// HasPathArgs reports whether the path template has placeholders.
func (e *Endpoint[P, B, R]) HasPathArgs() bool { return e.shape&shapePath != 0 }

// Shape names the inputs the endpoint takes, such as "path+params".
func (e *Endpoint[P, B, R]) Shape() string { return e.shape.String() }

// checkPathArgs requires the supplied keys to be exactly the placeholders.
func (e *Endpoint[P, B, R]) checkPathArgs(args map[string]string) error {
	mismatch := len(args) != len(e.pathArgs)
	if !mismatch {
		for _, name := range e.pathArgs {
			if _, ok := args[name]; !ok {
				mismatch = true
				break
			}
		}
	}
	if mismatch {
		return &PathParamsError{
			Path:     e.path,
			Expected: e.PathArgs(),
			Got:      sortedKeys(args),
		}
	}
	return nil
}

// prepare resolves path, params and body according to the endpoint's shape.
func (e *Endpoint[P, B, R]) prepare(opts *CallOptions[P, B]) (*prepared, error) {
	st := &prepared{path: e.path}

	if e.HasPathArgs() {
		if err := e.checkPathArgs(opts.PathArgs); err != nil {
			return nil, err
		}
		st.path = populatePathParams(e.path, opts.PathArgs)
	}

	if e.HasParams() {
		params := opts.Params
		if params == nil {
			def, err := fromDefaults[P](e.paramDefaults)
			if err != nil {
				return nil, fmt.Errorf("default params: %w", err)
			}
			params = &def
		}
		q, err := queryValues(params)
		if err != nil {
			return nil, err
		}
		st.query = q
	}

	if e.HasBody() {
		body := opts.Body
		if body == nil {
			def, err := fromDefaults[B](e.bodyDefaults)
			if err != nil {
				return nil, fmt.Errorf("default body: %w", err)
			}
			body = &def
		}
		st.body = body
	}

	return st, nil
}

// Call issues exactly one request and returns the decoded response.
func (e *Endpoint[P, B, R]) Call(ctx context.Context, cfg Config, opts CallOptions[P, B]) (R, error) {
	var zero R
	log := ensureLogger(opts.Logger)

	st, err := e.prepare(&opts)
	if err != nil {
		return zero, err
	}

	client := opts.Client
	if client == nil {
		client = httpclient.NewRestyClient(cfg.Timeout)
	}

	requestID := uuid.NewString()
	headers := map[string]string{
		"Accept":       "application/json",
		"X-Request-Id": requestID,
	}
	if cfg.APIKey != "" {
		headers["X-Api-Key"] = cfg.APIKey
	}

	target := cfg.baseURL() + st.path
	log.DebugObj("waha request", "waha_request", map[string]any{
		"method":     e.method.String(),
		"url":        target,
		"shape":      e.shape.String(),
		"request_id": requestID,
	})

	resp, err := client.Do(ctx, &httpclient.Request{
		Method:  e.method.String(),
		URL:     target,
		Query:   st.query,
		Headers: headers,
		Body:    st.body,
	})
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", e.method, target, err)
	}

	if resp.StatusCode() != e.expected {
		return zero, HandleError(resp, e.expected, log)
	}
	return decodeResponse[R](resp.Body())
}
