/*
Package consensus implements whole-asset transfers agreed by every holder.

Any holder of an asset can propose to move the whole asset to a recipient.
Once every identity currently holding a positive balance approved, the
balances of all holders move to the recipient in a single operation. The
holder set is read at the time of every approval and execution, not frozen
when the proposal is made: a holder whose balance dropped to zero no longer
needs to approve and a new holder must approve before execution.

A share held in escrow counts as held by the escrow custodian. The
custodian never approves, so a proposal cannot execute while a share of the
asset is in escrow. Once the share is released, its beneficiary is a holder
like any other and must approve.

Every holder must grant the engine (EngineCondition) a blanket transfer
authorization in the registry before the proposal can execute. When the
approval completing a proposal cannot execute it, the approval is kept, the
failure is reported with an ExecutionFailedEvent and the proposal can be
executed later with ExecuteMsg.

There is at most one open proposal per asset. An executed proposal can be
replaced by a new one.
*/
package consensus
