package server

import (
	"encoding/json"
	"net/http"

	"aaaas/sequence-api/pkg/api/apierror"
	"aaaas/sequence-api/pkg/api/auth"
	"aaaas/sequence-api/pkg/api/middleware"
)

// DecodeJSON reads the body into an untyped value. Anything that is not valid
// JSON is a BAD_REQUEST, independent of what the schema later says.
func (c *APICtx) DecodeJSON() (interface{}, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, apierror.Wrap(err, apierror.KindBadRequest, "Could not read request body")
	}
	var body interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, apierror.Wrap(err, apierror.KindBadRequest, "Invalid JSON in request body")
	}
	return body, nil
}

// Session is whatever the session middleware resolved for this request
func (c *APICtx) Session() auth.Session {
	return middleware.SessionFrom(c.Context)
}

// RequireSession enforces the route's auth kind through the gate. Open routes always pass.
func (a *APIServer) RequireSession(c *APICtx) (auth.Session, error) {
	session := c.Session()
	kind := middleware.RouteKindFrom(c.Context)
	if a.Gate == nil || kind == auth.RouteOpen {
		return session, nil
	}
	decision := a.Gate.Decide(session, kind, c.Request.URL.RequestURI())
	if !decision.Allow {
		if decision.Err != nil {
			return session, decision.Err
		}
		return session, apierror.Unauthorized("Unauthorized")
	}
	return session, nil
}

// Fail picks the status for err
func (c *APICtx) Fail(err error) (int, interface{}) {
	apiErr := apierror.From(err)
	return apierror.StatusCode(apiErr.Kind), apiErr
}

// Redirect answers with a redirect instead of a body
type Redirect struct {
	Location string
}

func (c *APICtx) Found(location string) (int, interface{}) {
	return http.StatusFound, Redirect{Location: location}
}
