package metrics

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// MethodTracer observes a single method call within an existing transaction
// trace. A nil tracer is valid and drops every observation, so call sites
// don't need to guard on whether a transaction is present.
type MethodTracer struct {
	txn *newrelic.Transaction
	seg *newrelic.Segment
}

// TraceMethodCall opens a trace segment for a method call on a given
// struct or package
func TraceMethodCall(ctx context.Context, structOrPackageName, methodName string) *MethodTracer {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return nil
	}

	return &MethodTracer{
		txn: txn,
		seg: txn.StartSegment(fmt.Sprintf("%s %s", structOrPackageName, methodName)),
	}
}

// OnError observes an error within the traced method call
func (t *MethodTracer) OnError(err error) {
	if t == nil || err == nil {
		return
	}

	t.txn.NoticeError(err)
}

// End completes the trace segment
func (t *MethodTracer) End() {
	if t == nil {
		return
	}

	t.seg.End()
}
