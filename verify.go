package merkle

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ValidateProof checks whether proof's path folds to target, re-deriving the
// hash engine from the proof's own recorded configuration rather than any
// live Tree: a proof is self-contained and verifiable without access to
// the tree that produced it.
//
// An empty path or a negative proof index rejects immediately; this is what
// makes a sentinel proof (returned by AuditProof/ConsistencyProof for
// absent records or mismatched prefixes) always fail here.
func ValidateProof(target []byte, proof *Proof) bool {
	if len(proof.proofPath) == 0 || proof.proofIndex < 0 {
		return false
	}
	if proof.proofIndex >= len(proof.proofPath) {
		return false
	}

	h := newHasher(proof.hashType, proof.security, proof.encoding)

	acc := proof.proofPath[proof.proofIndex].Digest
	for _, el := range proof.proofPath[proof.proofIndex+1:] {
		switch el.Sign {
		case SignRight:
			acc = h.internalDigest(acc, el.Digest)
		case SignLeft:
			acc = h.internalDigest(el.Digest, acc)
		default:
			return false
		}
	}
	return bytes.Equal(acc, target)
}

// Receipt records the outcome of a single ValidateProof call against a
// specific proof. It carries no cryptographic authority of its own beyond
// restating that result.
type Receipt struct {
	uuid             string
	timestamp        int64
	validationMoment time.Time
	proofUUID        string
	proofProvider    string
	result           bool
}

func (r *Receipt) UUID() string                { return r.uuid }
func (r *Receipt) Timestamp() int64            { return r.timestamp }
func (r *Receipt) ValidationMoment() time.Time { return r.validationMoment }
func (r *Receipt) ProofUUID() string           { return r.proofUUID }
func (r *Receipt) ProofProvider() string       { return r.proofProvider }
func (r *Receipt) Result() bool                { return r.result }

// GetValidationReceipt runs ValidateProof and wraps the outcome in a
// Receipt, stamped with its own identity and timestamp independent of the
// proof it describes.
func GetValidationReceipt(target []byte, proof *Proof) *Receipt {
	now := time.Now()
	return &Receipt{
		uuid:             uuid.New().String(),
		timestamp:        now.Unix(),
		validationMoment: now,
		proofUUID:        proof.uuid,
		proofProvider:    proof.provider,
		result:           ValidateProof(target, proof),
	}
}

// receiptJSON mirrors the canonical wire form.
type receiptJSON struct {
	UUID             string `json:"uuid"`
	Timestamp        int64  `json:"timestamp"`
	ValidationMoment int64  `json:"validation_moment"`
	ProofUUID        string `json:"proof_uuid"`
	ProofProvider    string `json:"proof_provider"`
	Result           bool   `json:"result"`
}

// MarshalJSON renders the receipt in the canonical wire form.
func (r *Receipt) MarshalJSON() ([]byte, error) {
	w := receiptJSON{
		UUID:             r.uuid,
		Timestamp:        r.timestamp,
		ValidationMoment: r.validationMoment.UnixNano(),
		ProofUUID:        r.proofUUID,
		ProofProvider:    r.proofProvider,
		Result:           r.result,
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses the canonical wire form back into a Receipt.
func (r *Receipt) UnmarshalJSON(b []byte) error {
	var w receiptJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	r.uuid = w.UUID
	r.timestamp = w.Timestamp
	r.validationMoment = time.Unix(0, w.ValidationMoment)
	r.proofUUID = w.ProofUUID
	r.proofProvider = w.ProofProvider
	r.result = w.Result
	return nil
}
