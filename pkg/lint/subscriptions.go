package lint

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// destroyCleanups maps subscription-like calls to the calls that release them
// when reached from ngOnDestroy.
var destroyCleanups = map[string][]string{
	"subscribe":        {"unsubscribe", "complete", "next"},
	"addEventListener": {"removeEventListener"},
	"setInterval":      {"clearInterval"},
}

// boundCleanups release a subscription wherever they appear in the class.
var boundCleanups = map[string][]string{
	"subscribe": {"takeUntilDestroyed"},
}

// leak is a subscription-like call without a matching cleanup.
type leak struct {
	calls []string
	line  int
}

// callName reduces a call expression to the called identifier, e.g.
// "this.sub.unsubscribe()" becomes "unsubscribe".
func callName(call string) string {
	if i := strings.IndexByte(call, '('); i >= 0 {
		call = call[:i]
	}
	if i := strings.LastIndexByte(call, '.'); i >= 0 {
		call = call[i+1:]
	}
	return strings.TrimSpace(call)
}

// ownMethod returns the method of the same class a call targets, e.g.
// "this.teardown()" targets "teardown".
func ownMethod(call string) (string, bool) {
	rest, ok := strings.CutPrefix(call, "this.")
	if !ok {
		return "", false
	}
	if i := strings.IndexByte(rest, '('); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" || strings.Contains(rest, ".") {
		return "", false
	}
	return rest, true
}

// hasSubscription reports whether any method makes a subscription-like call.
func hasSubscription(methods []core.Method) bool {
	for _, m := range methods {
		for _, call := range m.Calls {
			if _, ok := destroyCleanups[callName(call)]; ok {
				return true
			}
		}
	}
	return false
}

// reachableFromDestroy returns the call names reachable from ngOnDestroy,
// following calls to methods of the same class transitively.
func reachableFromDestroy(methods []core.Method) map[string]bool {
	byName := make(map[string]core.Method, len(methods))
	for _, m := range methods {
		byName[m.Name] = m
	}

	reached := make(map[string]bool)
	visited := make(map[string]bool)
	queue := []string{"ngOnDestroy"}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		m, ok := byName[name]
		if !ok || visited[name] {
			continue
		}
		visited[name] = true
		for _, call := range m.Calls {
			reached[callName(call)] = true
			if target, ok := ownMethod(call); ok {
				queue = append(queue, target)
			}
		}
	}
	return reached
}

// unmatchedSubscriptions finds subscription-like calls with no matching
// cleanup. It returns nil when every subscription is released.
func unmatchedSubscriptions(methods []core.Method) *leak {
	reached := reachableFromDestroy(methods)
	anywhere := make(map[string]bool)
	for _, m := range methods {
		for _, call := range m.Calls {
			anywhere[callName(call)] = true
		}
	}

	released := func(sub string) bool {
		for _, c := range destroyCleanups[sub] {
			if reached[c] {
				return true
			}
		}
		for _, c := range boundCleanups[sub] {
			if anywhere[c] {
				return true
			}
		}
		return false
	}

	unmatched := make(map[string]bool)
	line := 0
	for _, m := range methods {
		for _, call := range m.Calls {
			name := callName(call)
			if _, ok := destroyCleanups[name]; !ok || released(name) {
				continue
			}
			if len(unmatched) == 0 {
				line = m.Line
			}
			unmatched[name] = true
		}
	}
	if len(unmatched) == 0 {
		return nil
	}

	calls := make([]string, 0, len(unmatched))
	for name := range unmatched {
		calls = append(calls, name)
	}
	sort.Strings(calls)
	return &leak{calls: calls, line: line}
}

// HasUnreleasedSubscription reports whether any subscription-like call in
// methods lacks a matching cleanup.
func HasUnreleasedSubscription(methods []core.Method) bool {
	return unmatchedSubscriptions(methods) != nil
}
