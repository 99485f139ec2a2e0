// Package resolve implements the iterative resolution engine: the
// explicit, single-threaded walk from the root servers down to an
// authoritative answer, following NS referrals and CNAME aliases and
// bounded by a step budget instead of open-ended recursion.
package resolve

import (
	"errors"
	"time"

	"github.com/dnsscience/resolverd/internal/metrics"
	"github.com/dnsscience/resolverd/internal/random"
	"github.com/dnsscience/resolverd/internal/record"
	"github.com/dnsscience/resolverd/internal/tld"
	"github.com/dnsscience/resolverd/internal/transport"
	"github.com/dnsscience/resolverd/internal/wire"
	"github.com/miekg/dns"
	"go.uber.org/zap"
)

// ErrNoRecord is returned when the queried hostname exists (its zone has
// an SOA) but has no record of the requested type — the negative-answer
// case the original implementation prints a dedicated message for.
var ErrNoRecord = errors.New("resolve: hostname has no record of the requested type")

// ErrUnresolved covers every other way a resolution can come up empty:
// an invalid TLD, every server timing out, a malformed response, or the
// step budget running out before an answer was found.
var ErrUnresolved = errors.New("resolve: could not resolve request")

// DefaultMaxSteps bounds how many recursive resolveStep invocations a
// single top-level Resolve call may make before giving up, preventing
// infinite loops on pathological delegations (spec.md §4.6).
const DefaultMaxSteps = 30

// Engine walks the DNS hierarchy iteratively to answer A and MX queries.
// It is not safe for concurrent use by multiple goroutines sharing the
// same IDs source unless that source is — the resolution model is
// single-threaded by design (spec.md §5).
type Engine struct {
	Dialer      transport.Dialer
	IDs         random.IDSource
	RootServers []string
	MaxSteps    int
	Logger      *zap.Logger
}

// New builds an Engine with the given dialer, id source and root hints,
// applying package defaults for everything else.
func New(dialer transport.Dialer, ids random.IDSource, rootServers []string) *Engine {
	return &Engine{
		Dialer:      dialer,
		IDs:         ids,
		RootServers: rootServers,
		MaxSteps:    DefaultMaxSteps,
		Logger:      zap.NewNop(),
	}
}

// Resolve answers an A query (or MX, when wantMX is true) for hostname,
// starting from the engine's root servers. The call's wall-clock time is
// recorded in ResolutionDuration, labeled by how it ended.
func (e *Engine) Resolve(hostname string, wantMX bool) (string, error) {
	qtype := record.A
	if wantMX {
		qtype = record.MX
	}

	start := time.Now()
	label := "unresolved"
	defer func() {
		metrics.ResolutionDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()

	steps := 0
	answer, outcome := e.resolveStep(hostname, e.RootServers, qtype, 0, &steps)
	switch outcome {
	case outcomeAnswer:
		label = "answered"
		return answer, nil
	case outcomeNegative:
		label = "negative"
		return "", ErrNoRecord
	default:
		return "", ErrUnresolved
	}
}

type outcome int

const (
	outcomeUnresolved outcome = iota
	outcomeAnswer
	outcomeNegative
)

func (e *Engine) maxSteps() int {
	if e.MaxSteps > 0 {
		return e.MaxSteps
	}
	return DefaultMaxSteps
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.NewNop()
}

// resolveStep performs one query-and-classify round: build a query for
// target/qtype, send it to servers, parse the reply and hand it to the
// decision tree. depth is 0 only for the hostname the caller originally
// asked about — a negative (SOA) result only gets the dedicated
// ErrNoRecord treatment at that depth, since recursive sub-resolutions
// (an NS's own address, say) answering "no such record" doesn't mean the
// hostname the caller cares about doesn't exist.
func (e *Engine) resolveStep(target string, servers []string, qtype record.Type, depth int, steps *int) (string, outcome) {
	*steps++
	if *steps > e.maxSteps() {
		e.logger().Warn("step budget exceeded", zap.String("target", target), zap.Int("steps", *steps))
		metrics.StepBudgetExceeded.Inc()
		return "", outcomeUnresolved
	}

	if _, ok := tld.Effective(target); !ok {
		e.logger().Debug("invalid TLD", zap.String("target", target))
		return "", outcomeUnresolved
	}

	id := e.IDs.Next()
	query, err := wire.BuildQuery(id, target, qtype)
	if err != nil {
		e.logger().Debug("could not build query", zap.String("target", target), zap.Error(err))
		return "", outcomeUnresolved
	}

	metrics.QueriesSent.WithLabelValues(qtype.String()).Inc()
	e.logger().Debug("querying servers",
		zap.String("target", target),
		zap.String("qtype", dns.TypeToString[uint16(qtype)]),
		zap.Strings("servers", servers),
	)
	raw, err := transport.Query(e.Dialer, query, servers)
	if err != nil {
		metrics.ServerTimeouts.Inc()
		e.logger().Debug("no response from any server", zap.String("target", target))
		return "", outcomeUnresolved
	}

	resp, err := wire.ParseResponse(raw, id)
	if err != nil {
		e.logger().Debug("failed to parse response", zap.String("target", target), zap.Error(err))
		return "", outcomeUnresolved
	}

	return e.classify(target, resp, qtype, depth, steps)
}

// classify implements the decision tree of spec.md §4.6 against a parsed
// response for the given target hostname.
func (e *Engine) classify(target string, resp *wire.Response, qtype record.Type, depth int, steps *int) (string, outcome) {
	aliasFollowed := false
	for _, rec := range resp.Answers {
		if rec.Name == target && rec.Type == record.CNAME {
			if name, ok := rec.Value.Name(); ok {
				target = name
				aliasFollowed = true
			}
			break
		}
	}

	if rec, ok := resp.GetAnswer(target, qtype); ok {
		e.logger().Debug("answer found", zap.String("target", target), zap.String("value", rec.Value.String()))
		return rec.Value.String(), outcomeAnswer
	}

	if len(resp.Answers) == 0 && len(resp.Authority) == 0 {
		e.logger().Debug("empty response", zap.String("target", target))
		return "", outcomeUnresolved
	}

	hasSOA := false
	for _, rec := range resp.Authority {
		if rec.Type == record.SOA {
			hasSOA = true
			break
		}
	}
	if hasSOA && len(resp.Answers) == 0 {
		e.logger().Debug("SOA without answer, name does not exist for this type", zap.String("target", target))
		if depth == 0 {
			return "", outcomeNegative
		}
		return "", outcomeUnresolved
	}

	if aliasFollowed {
		metrics.AliasesFollowed.Inc()
		e.logger().Debug("following CNAME alias", zap.String("alias_target", target))
		return e.resolveStep(target, e.RootServers, qtype, depth+1, steps)
	}

	return e.referral(target, resp, qtype, depth, steps)
}

// referral implements step 7 of the decision tree: collect NS names in
// order, try glue first, then resolve each NS name to an address, then
// fall back to the root with the current target.
func (e *Engine) referral(target string, resp *wire.Response, qtype record.Type, depth int, steps *int) (string, outcome) {
	var nsNames []string
	for _, rec := range resp.Authority {
		if rec.Type != record.NS {
			continue
		}
		if name, ok := rec.Value.Name(); ok {
			nsNames = append(nsNames, name)
		}
	}

	var glue []string
	for _, ns := range nsNames {
		for _, rec := range resp.Additional {
			if rec.Name == ns && rec.Type == record.A {
				glue = append(glue, rec.Value.String())
				break
			}
		}
	}

	if len(glue) > 0 {
		metrics.ReferralsFollowed.Inc()
		e.logger().Debug("following referral with glue", zap.String("target", target), zap.Strings("servers", glue))
		return e.resolveStep(target, glue, qtype, depth+1, steps)
	}

	for _, ns := range nsNames {
		addr, out := e.resolveStep(ns, e.RootServers, record.A, depth+1, steps)
		if out == outcomeAnswer {
			metrics.ReferralsFollowed.Inc()
			e.logger().Debug("following referral via resolved NS address", zap.String("target", target), zap.String("ns", ns), zap.String("addr", addr))
			return e.resolveStep(target, []string{addr}, qtype, depth+1, steps)
		}
	}

	return e.resolveStep(target, e.RootServers, qtype, depth+1, steps)
}
