/*
Package ordset provides an in-memory, sorted, deduplicating container
of heterogeneous dynamic terms with stable random access by index.

Terms

A Term is a tagged value: Integer, Atom, Bitstring, Tuple, or List.
Terms compare under a single total order (see Term.Cmp) that is used
everywhere the set orders or deduplicates values; there is no separate
notion of equality.

Buckets

The set is not a single sorted slice. It is a sequence of Buckets, each
a small sorted, capacity-bounded run of Terms. Splitting a bucket that
has filled to its capacity inserts one new bucket into the bucket list,
moving only bucket pointers rather than reallocating the whole set,
which keeps insert cost bounded
even as the set grows into the hundreds of thousands of elements.

Uses

- Deduplicating collections of decoded, dynamically-typed values

- Workloads dominated by inserts and membership tests

- Callers that need stable positional access (At, Slice) alongside
sorted-set semantics

Concurrency

SortedSet itself is not safe for concurrent use and takes no locks;
callers that need to share a set across goroutines should serialize
access externally, or use the handle package, which wraps a SortedSet
with a per-handle, non-blocking mutex.
*/
package ordset
