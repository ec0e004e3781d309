package entrygen

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// PagesType selects the module graph shape synthesized for a route.
type PagesType string

const (
	PagesTypeApp   PagesType = "app"
	PagesTypePages PagesType = "pages"
	PagesTypeRoot  PagesType = "root"
)

// Region is a preferred execution region: either a single region name or an
// ordered list of them. Both transport shapes decode into the slice form.
type Region []string

func (r *Region) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*r = Region{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*r = Region(list)
	return nil
}

// MarshalJSON preserves the transport shape: a lone region round-trips as a
// bare string so the side-channel metadata matches what the pipeline sent.
func (r Region) MarshalJSON() ([]byte, error) {
	if len(r) == 1 {
		return json.Marshal(r[0])
	}
	return json.Marshal([]string(r))
}

// MiddlewareMatcher is one route matcher from the middleware config.
type MiddlewareMatcher struct {
	Regexp         string `json:"regexp"`
	OriginalSource string `json:"originalSource"`
}

// MiddlewareConfig is the parsed form of the base64-encoded middleware
// config. Unlike the page config it is consumed as data, not re-embedded
// verbatim.
type MiddlewareConfig struct {
	Matchers []MiddlewareMatcher `json:"matchers,omitempty"`
	Regions  Region              `json:"regions,omitempty"`
}

// Options is one route's build options in transport form. StringifiedConfig
// and AppDirLoader carry base64-encoded text, MiddlewareConfig carries
// base64-encoded JSON, and IsServerComponent carries a stringified boolean.
type Options struct {
	Dev                         bool      `json:"dev"`
	Page                        string    `json:"page"`
	BuildID                     string    `json:"buildId"`
	PagesType                   PagesType `json:"pagesType"`
	AbsolutePagePath            string    `json:"absolutePagePath"`
	AbsoluteAppPath             string    `json:"absoluteAppPath"`
	AbsoluteDocumentPath        string    `json:"absoluteDocumentPath"`
	Absolute500Path             string    `json:"absolute500Path"`
	AbsoluteErrorPath           string    `json:"absoluteErrorPath"`
	IsServerComponent           string    `json:"isServerComponent"`
	StringifiedConfig           string    `json:"stringifiedConfig"`
	AppDirLoader                string    `json:"appDirLoader"`
	MiddlewareConfig            string    `json:"middlewareConfig"`
	IncrementalCacheHandlerPath string    `json:"incrementalCacheHandlerPath"`
	PreferredRegion             Region    `json:"preferredRegion,omitempty"`
	SRIEnabled                  bool      `json:"sriEnabled"`
	ServerActionsSizeLimit      any       `json:"serverActionsSizeLimit,omitempty"`
}

// DecodeError is the fatal error class: a transport field that could not be
// decoded. Synthesis produces no output when one is returned.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode option %q: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// decodedOptions is Options after transport decoding, plus the values
// derived from it. isAppDir depends on PagesType alone.
type decodedOptions struct {
	Options

	stringifiedConfig string
	appDirLoader      string
	middleware        MiddlewareConfig
	isServerComponent bool
	isAppDir          bool
}

func decodeOptions(opts Options) (*decodedOptions, error) {
	stringifiedConfig, err := decodeBase64(opts.StringifiedConfig)
	if err != nil {
		return nil, &DecodeError{Field: "stringifiedConfig", Err: err}
	}

	appDirLoader, err := decodeBase64(opts.AppDirLoader)
	if err != nil {
		return nil, &DecodeError{Field: "appDirLoader", Err: err}
	}

	middlewareJSON, err := decodeBase64(opts.MiddlewareConfig)
	if err != nil {
		return nil, &DecodeError{Field: "middlewareConfig", Err: err}
	}
	var middleware MiddlewareConfig
	if middlewareJSON != "" {
		if err := json.Unmarshal([]byte(middlewareJSON), &middleware); err != nil {
			return nil, &DecodeError{Field: "middlewareConfig", Err: err}
		}
	}

	return &decodedOptions{
		Options:           opts,
		stringifiedConfig: stringifiedConfig,
		appDirLoader:      appDirLoader,
		middleware:        middleware,
		// Any value other than the literal "true" counts as false, typos
		// included. The upstream pipeline relies on this lenient default.
		isServerComponent: opts.IsServerComponent == "true",
		isAppDir:          opts.PagesType == PagesTypeApp,
	}, nil
}

// decodeBase64 decodes a transport field, treating an absent field as empty
// text rather than an error.
func decodeBase64(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
