package build

import "errors"

// Sentinel errors for stage failure classification. Stages wrap these so
// callers can branch with errors.Is without parsing messages.
var (
	ErrRouteResolution = errors.New("route resolution failed")
	ErrRender          = errors.New("render stage failed")
	ErrAssets          = errors.New("asset stage failed")
	ErrDeploy          = errors.New("deploy stage failed")
)
