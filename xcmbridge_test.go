package xcmbridge_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type XcmBridgeTestSuite struct {
	suite.Suite
}

func TestXcmBridge(t *testing.T) {
	suite.Run(t, new(XcmBridgeTestSuite))
}
