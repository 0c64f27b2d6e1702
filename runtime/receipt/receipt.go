// Package receipt models the slice of NEAR's receipt and action data model
// that the preparation pipeline reacts to. Receipts and actions are modeled
// as tagged sum types using the standard Go substitute for a Rust enum: an
// interface with an unexported marker method, implemented by one struct per
// variant (the same idiom the teacher uses for extensible header/body
// payloads in core/types).
package receipt

import (
	"fmt"

	"github.com/near/nearcore/runtime/account"
	"github.com/near/nearcore/runtime/common"
)

// A Receipt is a unit of asynchronous work applied within a chunk.
type Receipt struct {
	hash     common.Hash
	receiver account.ID
	body     Body
}

// New constructs a Receipt with the given hash, receiver and body.
func New(hash common.Hash, receiver account.ID, body Body) *Receipt {
	return &Receipt{hash: hash, receiver: receiver, body: body}
}

// Hash returns the receipt's stable hash.
func (r *Receipt) Hash() common.Hash { return r.hash }

// Receiver returns the receipt's receiver account.
func (r *Receipt) Receiver() account.ID { return r.receiver }

// Body returns the receipt's variant payload.
func (r *Receipt) Body() Body { return r.body }

// Body is the ReceiptEnum sum type: Action/PromiseYield (modeled as
// [Actions], since the pipeline treats them identically),
// GlobalContractDistribution, or Data/PromiseResume (modeled as [Opaque],
// since the pipeline has nothing to do with either).
type Body interface {
	isReceiptBody()
}

// Actions carries the ordered action sequence of an Action or PromiseYield
// receipt. Yield records which of the two this is; the pipeline does not
// currently distinguish between them (see spec 4.1), but the field is kept
// so callers needing the distinction elsewhere do not have to re-derive it.
type Actions struct {
	List  []Action
	Yield bool
}

func (Actions) isReceiptBody() {}

// GlobalContractDistribution carries the identifier of a newly distributed
// global contract.
type GlobalContractDistribution struct {
	ID account.GlobalContractIdentifier
}

func (GlobalContractDistribution) isReceiptBody() {}

// Opaque stands in for Data and PromiseResume receipts, neither of which the
// pipeline acts on.
type Opaque struct{}

func (Opaque) isReceiptBody() {}

// Action is the per-action sum type. The pipeline reacts to [FunctionCall],
// [DeployContract] and [UseGlobalContract]; [Delegate] and [Other] are inert.
type Action interface {
	isAction()
}

// FunctionCall invokes a contract method with a gas allowance.
type FunctionCall struct {
	MethodName string
	Gas        uint64
}

func (FunctionCall) isAction() {}

// DeployContract deploys new code to the receiving account.
type DeployContract struct{}

func (DeployContract) isAction() {}

// UseGlobalContract rebinds the receiving account to a global contract.
type UseGlobalContract struct {
	ID account.GlobalContractIdentifier
}

func (UseGlobalContract) isAction() {}

// Delegate generates further receipts without itself touching contract code.
type Delegate struct{}

func (Delegate) isAction() {}

// Other stands in for CreateAccount, Transfer, Stake, AddKey, DeleteKey,
// DeleteAccount and DeployGlobalContract: all inert from the pipeline's
// perspective.
type Other struct{}

func (Other) isAction() {}

// Action looks up the action at index i, panicking if the receipt has no
// action list or the index is out of range. This is the Go analogue of the
// original's `.actions.get(action_index).expect(...)` and
// `panic!("attempting to get_contract with a non-action receipt!?")`; both
// are contract violations by the caller, not routine errors.
func (r *Receipt) Action(i int) Action {
	al, ok := r.body.(Actions)
	if !ok {
		panic(fmt.Sprintf("receipt: Action(%d) called on a %T receipt, not an action receipt", i, r.body))
	}
	if i < 0 || i >= len(al.List) {
		panic(fmt.Sprintf("receipt: action index %d out of range for receipt %s with %d actions", i, r.hash, len(al.List)))
	}
	return al.List[i]
}
