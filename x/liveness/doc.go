/*
Package liveness tracks proofs of life of asset owners.

An owner is presumed deceased once the time elapsed since the last proof of
life reaches the inactivity threshold. The threshold is a single value held
in the liveness configuration. Changing it applies at once to every
evaluation, including evaluations of wills created before the change.

The tracker also keeps a per owner heartbeat: the time the owner was last
seen, either by an explicit proof of life or by moving an asset. A
heartbeat is a proof of life for every will of the owner: LatestProof
returns the later of the two.
*/
package liveness
