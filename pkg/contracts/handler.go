package contracts

import "github.com/julienschmidt/httprouter"

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Guard wraps a route that needs an authenticated admin.
type Guard func(httprouter.Handle) httprouter.Handle

// Open lets every request through. Used by tests and by binaries that do
// not expose admin routes.
func Open(h httprouter.Handle) httprouter.Handle {
	return h
}
