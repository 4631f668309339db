// Package resolver merges annotation candidates from multiple sources (the
// learned model, regex rules, the datetime grammar) into one non-overlapping
// set.
//
// Candidates must arrive sorted by span start. The resolver partitions them
// into conflict clusters by transitive overlap: a growing-union scan extends
// the cluster while the next candidate starts before the furthest end seen
// so far, so A-B and B-C overlapping pulls A and C into the same cluster
// even when A and C themselves are disjoint. Singleton clusters are accepted
// as-is without classification, preserving deferred work for candidates that
// never compete.
//
// Within a cluster, candidates are ranked by priority score, descending,
// with ties keeping the original candidate order. A candidate whose top
// label is the "other" sentinel ranks with priority -1 regardless of its
// configured priority score, so any real label beats it; a candidate whose
// resolved classification is empty ranks at 0, above the sentinel but below
// any positive priority. The ranked list is swept greedily: accept a
// candidate when it overlaps none of the already accepted ones.
//
// Classification may be deferred: a Pending candidate carries only its span,
// and the resolver invokes the classify callback the first time the
// candidate's priority is needed. A callback error aborts the whole
// resolution; the caller gets no partial result.
package resolver
