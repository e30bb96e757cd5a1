package model

// Authorizer decides whether a role may perform action on resource.
type Authorizer interface {
	Authorize(role Role, resource, action string) (bool, error)
}
