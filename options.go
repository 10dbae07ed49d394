package merkle

// config holds the construction-time parameters, all with defaults, fixed
// for the lifetime of the tree.
type config struct {
	hashType HashType
	encoding Encoding
	rawBytes bool
	security bool
	provider string
	records  []interface{}
}

func defaultConfig() config {
	return config{
		hashType: HashSHA256,
		encoding: EncodingUTF8,
		rawBytes: false,
		security: true,
	}
}

// Option configures a Tree at construction time (functional-options
// pattern), so New can be called with only the parameters that diverge
// from the defaults.
type Option func(*config)

// WithHashType selects the digest algorithm. Default: HashSHA256.
func WithHashType(t HashType) Option {
	return func(c *config) { c.hashType = t }
}

// WithEncoding selects the text encoding used to convert string records to
// bytes. Default: EncodingUTF8. With WithRawBytes(true), string records are
// not encoded with it, but digests are still stored as hex text under it.
func WithEncoding(e Encoding) Option {
	return func(c *config) { c.encoding = e }
}

// WithRawBytes treats records as raw bytes instead of re-encoding them
// under the configured Encoding. Default: false.
func WithRawBytes(raw bool) Option {
	return func(c *config) { c.rawBytes = raw }
}

// WithSecurity enables domain-separation prefixes distinguishing leaf-input
// from internal-input hash contexts. Default: true.
func WithSecurity(security bool) Option {
	return func(c *config) { c.security = security }
}

// WithProvider attaches a tree identifier carried into proofs produced by
// this tree.
func WithProvider(id string) Option {
	return func(c *config) { c.provider = id }
}

// WithRecords appends an initial list of records at construction time, in
// order, before New returns. A record is either a string or a []byte.
func WithRecords(records ...interface{}) Option {
	return func(c *config) { c.records = append(c.records, records...) }
}
