package contracts

import "github.com/julienschmidt/httprouter"

// Handler is anything that can mount its routes on the shared router.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
