/*
Package orm provides an easy to use db wrapper.

The state space is broken into prefixed sections called buckets. Each bucket
contains only one type of model, addressed by a primary key, and may possess
secondary indexes (1:1 or 1:N). A bucket can register itself and its indexes
with the query router so that clients can look up the state.

Sequences provide monotonic counters used to allocate primary keys.
*/
package orm
