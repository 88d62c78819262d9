package xcmbridge

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// RelayFee is the fee charged on the destination side, possibly in a token other than the one moved.
type RelayFee struct {
	Token  string           `yaml:"token" json:"token"`
	Amount AmountBlockchain `yaml:"amount" json:"amount"`
}

type relayFeeRecord struct {
	Token  string `yaml:"token" json:"token"`
	Amount string `yaml:"amount" json:"amount"`
}

func (f *RelayFee) fromRecord(record relayFeeRecord) error {
	amount, err := ParseAmountBlockchainCeil(record.Amount)
	if err != nil {
		return err
	}
	f.Token = strings.TrimSpace(record.Token)
	f.Amount = amount
	return nil
}

var _ yaml.Unmarshaler = &RelayFee{}
var _ json.Unmarshaler = &RelayFee{}

func (f *RelayFee) UnmarshalYAML(node *yaml.Node) error {
	var record relayFeeRecord
	if err := node.Decode(&record); err != nil {
		return err
	}
	return f.fromRecord(record)
}

func (f *RelayFee) UnmarshalJSON(data []byte) error {
	var record struct {
		Token  string          `json:"token"`
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}
	return f.fromRecord(relayFeeRecord{Token: record.Token, Amount: strings.Trim(string(record.Amount), "\"")})
}

// TransferParams is the caller input of a single transfer attempt.
type TransferParams struct {
	To     ChainID             `json:"to"`
	Token  string              `json:"token"`
	Amount AmountHumanReadable `json:"amount"`
	// Recipient on the destination chain
	Address string `json:"address"`
	Signer  string `json:"signer"`
}
