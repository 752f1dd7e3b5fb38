package web

// buildHandlerChain wraps handler so the first global middleware runs first.
func (wh *WebHandler) buildHandlerChain(handler HandlerFunc, middleware ...Middleware) HandlerFunc {
	all := make([]Middleware, 0, len(wh.globalMiddleware)+len(middleware))
	all = append(all, wh.globalMiddleware...)
	all = append(all, middleware...)

	final := handler
	for i := len(all) - 1; i >= 0; i-- {
		final = all[i](final)
	}

	return final
}
