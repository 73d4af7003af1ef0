/*
Package will implements the individual will engine.

An owner writes a will leaving a share of an asset to a single heir. The will
executes once the owner is presumed deceased by the liveness tracker and
enough of the trustees named in the will approved the death.

On execution the share goes straight to the heir if the heir is old enough
and no vesting period was requested. Otherwise the share goes into the escrow
vault and the heir claims it once the vesting period is over. An underage
heir always goes through escrow, even without vesting: the unlock time is
then the execution time and the claim is possible at once.

A will is moved by the engine, not by the owner, so the owner must grant the
engine (EngineCondition) a blanket transfer authorization in the registry
before the will can execute.

Wills of an owner are stored in an append-only list. The key of a will is
the owner address followed by the big endian position in that list.
*/
package will
