package client

import (
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/extrinsic"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/extrinsic/extensions"
	"github.com/cordialsys/xcmbridge/xcm"
	"github.com/sirupsen/logrus"
)

type CallMeta struct {
	Name         string `json:"name"`
	SectionIndex uint8  `json:"section"`
	MethodIndex  uint8  `json:"method"`
}

// Metadata is the part of the runtime metadata the transfer calls need.
type Metadata struct {
	Calls            []*CallMeta                      `json:"calls"`
	SignedExtensions []extensions.SignedExtensionName `json:"signed_extensions"`
}

var _ xcm.CallIndexer = &Metadata{}

func (m *Metadata) FindCallIndex(name string) (types.CallIndex, error) {
	for _, call := range m.Calls {
		if call.Name == name {
			return types.CallIndex{
				SectionIndex: call.SectionIndex,
				MethodIndex:  call.MethodIndex,
			}, nil
		}
	}
	return types.CallIndex{}, fmt.Errorf("unsupported substrate method: %s", name)
}

// TrimMeta keeps the call indices of the transfer pallets and the signed extensions.
// A chain usually has only one of the transfer pallets, the rest are skipped.
func TrimMeta(meta *types.Metadata, calls []string) (Metadata, error) {
	trimmed := Metadata{}
	for _, name := range calls {
		call, err := meta.FindCallIndex(name)
		if err != nil {
			logrus.WithField("name", name).Debug("chain does not support extrinsic")
			continue
		}
		trimmed.Calls = append(trimmed.Calls, &CallMeta{
			Name:         name,
			SectionIndex: call.SectionIndex,
			MethodIndex:  call.MethodIndex,
		})
	}
	for _, signedExtension := range meta.AsMetadataV14.Extrinsic.SignedExtensions {
		signedExtensionType, ok := meta.AsMetadataV14.EfficientLookup[signedExtension.Type.Int64()]
		if !ok {
			return trimmed, fmt.Errorf("signed extension type '%d' is not defined", signedExtension.Type.Int64())
		}
		name := extensions.SignedExtensionName(signedExtensionType.Path[len(signedExtensionType.Path)-1])
		trimmed.SignedExtensions = append(trimmed.SignedExtensions, name)
	}
	return trimmed, nil
}

// Runtime specific extensions without payload fields
var localPayloadMutatorFns = map[extensions.SignedExtensionName]extrinsic.PayloadMutatorFn{
	"SetEvmOrigin": func(payload *extrinsic.Payload) {},
}

func createPayload(meta *Metadata, encodedCall []byte) *extrinsic.Payload {
	payload := &extrinsic.Payload{
		EncodedCall: encodedCall,
	}
	for _, signedExtension := range meta.SignedExtensions {
		payloadMutatorFn, ok := extrinsic.PayloadMutatorFns[signedExtension]
		if !ok {
			payloadMutatorFn, ok = localPayloadMutatorFns[signedExtension]
			if !ok {
				logrus.WithField("extension", signedExtension).Debug("signed extension is not supported, fee may be inaccurate")
				continue
			}
		}
		payloadMutatorFn(payload)
	}
	return payload
}
