package merkle

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sign indicates which side of the running accumulator a path element's
// digest sits on during verification: SignRight means the digest combines
// as H(acc, digest); SignLeft means H(digest, acc). SignStart marks the
// first element of a path, whose digest seeds the accumulator and whose
// sign is not used.
type Sign int8

const (
	SignStart Sign = 0
	SignRight Sign = 1
	SignLeft  Sign = -1
)

// PathElement is one (sign, digest) pair of a proof path.
type PathElement struct {
	Sign   Sign
	Digest []byte
}

// Proof is an immutable audit or consistency proof. Construct one via
// Tree.AuditProof or Tree.ConsistencyProof; validate it via ValidateProof
// or GetValidationReceipt.
type Proof struct {
	uuid             string
	timestamp        int64
	creationMoment   time.Time
	generationStatus bool
	provider         string
	hashType         HashType
	encoding         Encoding
	security         bool
	rawBytes         bool
	proofIndex       int
	proofPath        []PathElement
}

func newProofID() string {
	return uuid.New().String()
}

func newProof(t *Tree, path []PathElement, index int) *Proof {
	now := time.Now()
	return &Proof{
		uuid:             newProofID(),
		timestamp:        now.Unix(),
		creationMoment:   now,
		generationStatus: true,
		provider:         t.provider,
		hashType:         t.hasher.typ,
		encoding:         t.encoding,
		security:         t.hasher.security,
		rawBytes:         t.rawBytes,
		proofIndex:       index,
		proofPath:        path,
	}
}

// newSentinelProof builds the deliberately-failing proof returned for
// out-of-range audit indices and unresolvable records or sublens: an empty
// path with a negative proof index. ValidateProof rejects this by
// construction, before ever touching the hash engine.
func newSentinelProof(t *Tree) *Proof {
	return &Proof{
		uuid:             newProofID(),
		timestamp:        time.Now().Unix(),
		creationMoment:   time.Now(),
		generationStatus: false,
		provider:         t.provider,
		hashType:         t.hasher.typ,
		encoding:         t.encoding,
		security:         t.hasher.security,
		rawBytes:         t.rawBytes,
		proofIndex:       -1,
		proofPath:        nil,
	}
}

func (p *Proof) UUID() string               { return p.uuid }
func (p *Proof) Timestamp() int64           { return p.timestamp }
func (p *Proof) CreationMoment() time.Time  { return p.creationMoment }
func (p *Proof) GenerationStatus() bool     { return p.generationStatus }
func (p *Proof) Provider() string           { return p.provider }
func (p *Proof) HashType() HashType         { return p.hashType }
func (p *Proof) Encoding() Encoding         { return p.encoding }
func (p *Proof) Security() bool             { return p.security }
func (p *Proof) RawBytes() bool             { return p.rawBytes }
func (p *Proof) ProofIndex() int            { return p.proofIndex }

// ProofPath returns a copy of the proof's (sign, digest) path; callers
// cannot mutate a Proof's internal state through it.
func (p *Proof) ProofPath() []PathElement {
	out := make([]PathElement, len(p.proofPath))
	for i, el := range p.proofPath {
		out[i] = PathElement{Sign: el.Sign, Digest: append([]byte(nil), el.Digest...)}
	}
	return out
}

// proofJSON mirrors the canonical wire form: a header of metadata and a
// body carrying the proof path.
type proofJSON struct {
	Header struct {
		UUID           string `json:"uuid"`
		Timestamp      int64  `json:"timestamp"`
		CreationMoment int64  `json:"creation_moment"`
		Generation     bool   `json:"generation"`
		Provider       string `json:"provider"`
		HashType       string `json:"hash_type"`
		Encoding       string `json:"encoding"`
		Security       bool   `json:"security"`
		RawBytes       bool   `json:"raw_bytes"`
		Status         bool   `json:"status"`
	} `json:"header"`
	Body struct {
		ProofIndex int          `json:"proof_index"`
		ProofPath  []jsonPathEl `json:"proof_path"`
	} `json:"body"`
}

// jsonPathEl lets us marshal a [sign, digest-text] pair as a bare
// two-element JSON array instead of an object.
type jsonPathEl struct {
	sign   int
	digest string
}

func (e jsonPathEl) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{e.sign, e.digest})
}

func (e *jsonPathEl) UnmarshalJSON(b []byte) error {
	var pair [2]interface{}
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	signF, ok := pair[0].(float64)
	if !ok {
		return fmt.Errorf("%w: proof path sign must be a number", ErrInvalidType)
	}
	digest, ok := pair[1].(string)
	if !ok {
		return fmt.Errorf("%w: proof path digest must be a string", ErrInvalidType)
	}
	e.sign, e.digest = int(signF), digest
	return nil
}

// MarshalJSON renders the proof in the canonical header/body form, with
// proof_path digests decoded into text under the proof's configured
// Encoding.
func (p *Proof) MarshalJSON() ([]byte, error) {
	var w proofJSON
	w.Header.UUID = p.uuid
	w.Header.Timestamp = p.timestamp
	w.Header.CreationMoment = p.creationMoment.UnixNano()
	w.Header.Generation = p.generationStatus
	w.Header.Provider = p.provider
	w.Header.HashType = p.hashType.String()
	w.Header.Encoding = p.encoding.String()
	w.Header.Security = p.security
	w.Header.RawBytes = p.rawBytes
	w.Header.Status = p.generationStatus

	w.Body.ProofIndex = p.proofIndex
	w.Body.ProofPath = make([]jsonPathEl, len(p.proofPath))
	for i, el := range p.proofPath {
		text, err := p.encoding.decode(el.Digest)
		if err != nil {
			return nil, err
		}
		w.Body.ProofPath[i] = jsonPathEl{sign: int(el.Sign), digest: text}
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses the canonical wire form back into a Proof.
func (p *Proof) UnmarshalJSON(b []byte) error {
	var w proofJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	hashType, err := ParseHashType(w.Header.HashType)
	if err != nil {
		return err
	}
	enc, err := ParseEncoding(w.Header.Encoding)
	if err != nil {
		return err
	}

	p.uuid = w.Header.UUID
	p.timestamp = w.Header.Timestamp
	p.creationMoment = time.Unix(0, w.Header.CreationMoment)
	p.generationStatus = w.Header.Generation
	p.provider = w.Header.Provider
	p.hashType = hashType
	p.encoding = enc
	p.security = w.Header.Security
	p.rawBytes = w.Header.RawBytes
	p.proofIndex = w.Body.ProofIndex

	p.proofPath = make([]PathElement, len(w.Body.ProofPath))
	for i, el := range w.Body.ProofPath {
		digest, err := enc.encode(el.digest)
		if err != nil {
			return err
		}
		p.proofPath[i] = PathElement{Sign: Sign(el.sign), Digest: digest}
	}
	return nil
}
