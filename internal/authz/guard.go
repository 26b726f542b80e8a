package authz

// DecisionKind enumerates the three outcomes of a navigation request.
type DecisionKind int

const (
	// DecisionAllow renders the requested screen.
	DecisionAllow DecisionKind = iota
	// DecisionLoginRedirect sends an unauthenticated actor to the login
	// screen, retaining the originally requested path.
	DecisionLoginRedirect
	// DecisionDenyRedirect silently lands an authorized-but-denied actor on
	// their role's default route. Denied actors never see a forbidden page.
	DecisionDenyRedirect
)

// Decision is the route guard's verdict for one navigation request.
type Decision struct {
	Kind DecisionKind
	// Target is the redirect destination for the two redirect kinds.
	Target string
	// From is the originally requested path, carried on login redirects so
	// login can return the actor to it afterward.
	From string
}

// Evaluate decides whether the actor may navigate to path. It is computed
// fresh on every call; the actor is passed explicitly rather than read from
// any process-wide state.
func Evaluate(actor *Actor, path string) Decision {
	if actor == nil {
		return Decision{Kind: DecisionLoginRedirect, Target: PathLogin, From: path}
	}
	// The root path is never a screen of its own.
	if path == "/" || path == "" {
		return Decision{Kind: DecisionDenyRedirect, Target: DefaultLandingRoute(actor.Role)}
	}
	if !IsAuthorized(actor.Role, path) {
		return Decision{Kind: DecisionDenyRedirect, Target: DefaultLandingRoute(actor.Role)}
	}
	return Decision{Kind: DecisionAllow}
}
