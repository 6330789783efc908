package routing

// Listener is notified with the recomputed Route after every fragment change.
type Listener func(Route)

// Router is a synchronous state machine over the location fragment: callers
// report fragment changes through Apply, the listener renders the result.
// There is no imperative navigate call and no queueing. Not safe for
// concurrent use; the session runs it on a single goroutine.
type Router struct {
	current  Route
	listener Listener
}

func NewRouter(listener Listener) *Router {
	return &Router{current: Route{View: ViewHome}, listener: listener}
}

// Apply recomputes the route from the fragment and notifies the listener.
// It is called once on load and on every subsequent fragment change.
func (r *Router) Apply(fragment string) {
	r.current = ParseFragment(fragment)
	if r.listener != nil {
		r.listener(r.current)
	}
}

func (r *Router) Current() Route {
	return r.current
}
