package xcmbridge

// Address is an externally supplied account string: SS58 or a 0x prefixed H160.
type Address string

// AddressCodec converts external address strings into the raw account encodings a chain stores.
type AddressCodec interface {
	// 32 byte substrate account id
	AccountID32(addr Address) ([]byte, error)
	// 20 byte EVM account key
	AccountKey20(addr Address) ([]byte, error)
	// Account bytes used as a storage key on the given chain
	StorageKey(chain *Chain, addr Address) ([]byte, error)
	Encode(chain *Chain, account []byte) (Address, error)
}
