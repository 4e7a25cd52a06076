package telemetry

// API is what components report through instead of logging directly, so
// tests can assert on reports and production can route them anywhere.
type API interface {
	// ReportBroken reports a component that failed and needs attention.
	//
	// `id` names the component or operation (`create-ticket`), never the
	// failing step inside it; the step belongs in params or a wrapped error.
	// Ids are lowercase with dashes, see the `report_*` constants.
	ReportBroken(id string, params ...any)
	// ReportWarning reports something odd that did not fail the operation.
	ReportWarning(id string, params ...any)
	// ReportDebug is dropped unless debug output is enabled.
	ReportDebug(msg string, params ...any)
	// ReportCount reports a gauge-like observation, counts are points over
	// time and must not be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace, nesting scopes joins their
// namespaces with dots.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	if parent, ok := inner.(ScopedAPI); ok {
		return ScopedAPI{namespace: parent.namespace + "." + namespace, inner: parent.inner}
	}
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) scoped(id string) string {
	return s.namespace + "." + id
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.scoped(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.scoped(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.scoped(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.scoped(id), count)
}
