// Package dispatch implements the request coalescing core of the zmail
// client. It provides the Dispatcher, the single entry point every typed
// operation funnels through, and the three mechanisms behind it:
//
//   - Router: a request carrying a delegated account scope is executed alone;
//     every other request joins the shared batch path. The decision is made
//     per request, never cached.
//   - Batch coalescer: unscoped requests submitted close together are merged
//     into one envelope and executed as a single transport call. A window
//     opens when the first request arrives and closes when either BatchWindow
//     elapses since that arrival or MaxBatchSize requests have accumulated;
//     the frozen batch is then executed and a new window opens. Outcomes are
//     demultiplexed back to callers strictly by position, so one item's fault
//     never disturbs its siblings.
//   - Single-call executor: a scoped request becomes its own envelope tagged
//     with the target account. Scoped requests are never merged, not even
//     with each other.
//
// The dispatcher owns the session token: every outgoing envelope carries a
// snapshot taken at dispatch time, and a refreshed token on a reply replaces
// the stored value before that call's outcomes are delivered. Because one
// loop goroutine both snapshots and applies for the batch path, a later batch
// never executes with a snapshot older than an earlier batch's applied
// update. Replies may also carry an opaque notification payload; it is handed
// to the registered handler at most once per completed call, again before
// outcome delivery.
//
// The dispatcher never retries. Item faults reject exactly one caller;
// transport failures reject every caller whose request shared the envelope.
package dispatch
